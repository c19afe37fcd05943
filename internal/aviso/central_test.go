package aviso

import (
	"testing"
	"time"
)

func TestPublicar_OrdemDeCriacao(t *testing.T) {
	c := NewCentralComDuracao(time.Minute)
	defer c.Encerrar()

	c.Publicar("primeiro", TipoInfo)
	c.Publicar("segundo", TipoSucesso)
	c.Publicar("terceiro", TipoErro)

	ativos := c.Ativos()
	if len(ativos) != 3 {
		t.Fatalf("expected 3 avisos, got %d", len(ativos))
	}
	if ativos[0].Mensagem != "primeiro" || ativos[1].Mensagem != "segundo" || ativos[2].Mensagem != "terceiro" {
		t.Fatalf("avisos fora de ordem: %+v", ativos)
	}
}

func TestDispensar_Idempotente(t *testing.T) {
	c := NewCentralComDuracao(time.Minute)
	defer c.Encerrar()

	a := c.Publicar("dispensável", TipoInfo)
	c.Publicar("permanece", TipoInfo)

	c.Dispensar(a.ID)
	c.Dispensar(a.ID)
	c.Dispensar("id-inexistente")

	ativos := c.Ativos()
	if len(ativos) != 1 {
		t.Fatalf("expected 1 aviso, got %d", len(ativos))
	}
	if ativos[0].Mensagem != "permanece" {
		t.Fatalf("aviso errado removido: %+v", ativos)
	}
}

func TestPublicar_ExpiraAutomaticamente(t *testing.T) {
	c := NewCentralComDuracao(20 * time.Millisecond)
	defer c.Encerrar()

	c.Publicar("efêmero", TipoInfo)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(c.Ativos()) == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("aviso não expirou dentro do prazo")
}

func TestAssinar_RecebeEventos(t *testing.T) {
	c := NewCentralComDuracao(time.Minute)
	defer c.Encerrar()

	eventos, cancelar := c.Assinar()
	defer cancelar()

	a := c.Publicar("notificado", TipoSucesso)

	select {
	case ev := <-eventos:
		if ev.Nome != "publicado" || ev.Aviso.ID != a.ID {
			t.Fatalf("evento inesperado: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("evento de publicação não chegou")
	}

	c.Dispensar(a.ID)

	select {
	case ev := <-eventos:
		if ev.Nome != "removido" || ev.Aviso.ID != a.ID {
			t.Fatalf("evento inesperado: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("evento de remoção não chegou")
	}
}

func TestEncerrar_ParaTimersEFechaAssinaturas(t *testing.T) {
	c := NewCentralComDuracao(time.Minute)

	eventos, cancelar := c.Assinar()
	defer cancelar()

	c.Publicar("qualquer", TipoInfo)
	c.Encerrar()

	if len(c.Ativos()) != 0 {
		t.Fatal("expected empty queue after Encerrar")
	}

	// canal fechado após drenar o evento de publicação pendente
	for {
		if _, aberto := <-eventos; !aberto {
			return
		}
	}
}
