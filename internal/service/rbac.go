package service

// Papéis reconhecidos pelo ministério.
const (
	PapelLider    = "lider"
	PapelMinistro = "ministro"
	PapelMusico   = "musico"
)

// Recurso identifica uma entidade protegida.
type Recurso string

// Acao identifica a operação sobre o recurso.
type Acao string

const (
	RecursoUsuarios    Recurso = "usuarios"
	RecursoEnsaios     Recurso = "ensaios"
	RecursoEscalas     Recurso = "escalas"
	RecursoRepertorios Recurso = "repertorios"
	RecursoAvisos      Recurso = "avisos"
)

const (
	AcaoLer     Acao = "ler"
	AcaoCriar   Acao = "criar"
	AcaoEditar  Acao = "editar"
	AcaoExcluir Acao = "excluir"
)

// matriz é a fonte única de permissões por entidade e ação, consumida
// uniformemente pelo middleware de guarda. Lista vazia significa
// "qualquer papel atribuído"; ação ausente significa negado para todos.
var matriz = map[Recurso]map[Acao][]string{
	RecursoUsuarios: {
		AcaoCriar: {PapelLider},
	},
	RecursoEnsaios: {
		AcaoLer:     {},
		AcaoCriar:   {PapelLider, PapelMinistro},
		AcaoEditar:  {PapelLider, PapelMinistro},
		AcaoExcluir: {PapelLider, PapelMinistro},
	},
	RecursoEscalas: {
		AcaoLer:     {},
		AcaoCriar:   {PapelLider},
		AcaoEditar:  {PapelLider},
		AcaoExcluir: {PapelLider},
	},
	RecursoRepertorios: {
		AcaoLer:     {},
		AcaoCriar:   {PapelLider, PapelMinistro},
		AcaoEditar:  {PapelLider, PapelMinistro},
		AcaoExcluir: {PapelLider, PapelMinistro},
	},
	RecursoAvisos: {
		AcaoLer:     {},
		AcaoExcluir: {},
	},
}

// Autorizado decide se o papel pode executar a ação sobre o recurso.
// Usuário sem papel atribuído é sempre negado.
func Autorizado(papel string, recurso Recurso, acao Acao) bool {
	if papel == "" {
		return false
	}

	acoes, ok := matriz[recurso]
	if !ok {
		return false
	}
	permitidos, ok := acoes[acao]
	if !ok {
		return false
	}

	if len(permitidos) == 0 {
		return true
	}
	for _, p := range permitidos {
		if p == papel {
			return true
		}
	}
	return false
}

// PapelValido confere se o papel é um dos reconhecidos.
func PapelValido(papel string) bool {
	switch papel {
	case PapelLider, PapelMinistro, PapelMusico:
		return true
	}
	return false
}
