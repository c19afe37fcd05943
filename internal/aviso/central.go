package aviso

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Tipo classifica o aviso exibido.
type Tipo string

const (
	TipoSucesso Tipo = "success"
	TipoErro    Tipo = "error"
	TipoInfo    Tipo = "info"
)

// DuracaoPadrao é o tempo de vida de cada aviso antes da remoção automática.
const DuracaoPadrao = 3 * time.Second

// Aviso é uma mensagem transitória de feedback, renderizada em ordem
// de criação e removida automaticamente após a duração configurada.
type Aviso struct {
	ID       string    `json:"id"`
	Mensagem string    `json:"mensagem"`
	Tipo     Tipo      `json:"tipo"`
	CriadoEm time.Time `json:"criado_em"`
}

// Evento notifica assinantes sobre mudanças na fila.
type Evento struct {
	Nome  string `json:"evento"` // "publicado" ou "removido"
	Aviso Aviso  `json:"aviso"`
}

// Central é a fila de avisos do processo. Uma instância por execução,
// injetada onde for preciso publicar; as mutações (append e remoção por
// id) são protegidas por mutex e seguras entre timers e requisições.
type Central struct {
	mu         sync.Mutex
	avisos     []Aviso
	timers     map[string]*time.Timer
	assinantes map[chan Evento]struct{}
	duracao    time.Duration
	encerrada  bool
}

// NewCentral cria a central com a duração padrão de 3 segundos.
func NewCentral() *Central {
	return NewCentralComDuracao(DuracaoPadrao)
}

// NewCentralComDuracao permite encurtar a expiração em testes.
func NewCentralComDuracao(d time.Duration) *Central {
	return &Central{
		timers:     make(map[string]*time.Timer),
		assinantes: make(map[chan Evento]struct{}),
		duracao:    d,
	}
}

// Publicar adiciona um aviso à fila e agenda a remoção automática.
// Pode ser chamado de qualquer ponto do serviço.
func (c *Central) Publicar(mensagem string, tipo Tipo) Aviso {
	a := Aviso{
		ID:       uuid.NewString(),
		Mensagem: mensagem,
		Tipo:     tipo,
		CriadoEm: time.Now().UTC(),
	}

	c.mu.Lock()
	if c.encerrada {
		c.mu.Unlock()
		return a
	}
	c.avisos = append(c.avisos, a)
	c.timers[a.ID] = time.AfterFunc(c.duracao, func() {
		c.Dispensar(a.ID)
	})
	c.notificar(Evento{Nome: "publicado", Aviso: a})
	c.mu.Unlock()

	if tipo == TipoErro {
		log.Warn().Str("aviso_id", a.ID).Msg(mensagem)
	}
	return a
}

// Dispensar remove o aviso imediatamente. Remover um id ausente é
// no-op: a dispensa manual e o timer automático podem disparar para o
// mesmo aviso sem efeito duplicado.
func (c *Central) Dispensar(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}

	restantes := c.avisos[:0]
	var removido *Aviso
	for _, a := range c.avisos {
		if a.ID == id {
			removido = &a
			continue
		}
		restantes = append(restantes, a)
	}
	c.avisos = restantes

	if removido != nil {
		c.notificar(Evento{Nome: "removido", Aviso: *removido})
	}
}

// Ativos devolve os avisos correntes em ordem de criação.
func (c *Central) Ativos() []Aviso {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Aviso, len(c.avisos))
	copy(out, c.avisos)
	return out
}

// Assinar registra um canal para receber eventos da fila; o retorno
// inclui a função de cancelamento da assinatura.
func (c *Central) Assinar() (<-chan Evento, func()) {
	ch := make(chan Evento, 16)

	c.mu.Lock()
	c.assinantes[ch] = struct{}{}
	c.mu.Unlock()

	cancelar := func() {
		c.mu.Lock()
		if _, ok := c.assinantes[ch]; ok {
			delete(c.assinantes, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancelar
}

// Encerrar interrompe timers pendentes e fecha assinaturas.
func (c *Central) Encerrar() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.encerrada = true
	for id, timer := range c.timers {
		timer.Stop()
		delete(c.timers, id)
	}
	for ch := range c.assinantes {
		delete(c.assinantes, ch)
		close(ch)
	}
	c.avisos = nil
}

// notificar exige c.mu segurado; assinante lento perde o evento em vez
// de bloquear a fila.
func (c *Central) notificar(ev Evento) {
	for ch := range c.assinantes {
		select {
		case ch <- ev:
		default:
		}
	}
}
