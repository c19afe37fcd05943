package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/louvorapp/api/internal/repo"
)

type stubPapelRepo struct {
	papel repo.PapelUsuario
	err   error
}

func (s *stubPapelRepo) GetPapelByUsuario(_ context.Context, _ uuid.UUID) (repo.PapelUsuario, error) {
	return s.papel, s.err
}

func TestResolverPapel_Encontrado(t *testing.T) {
	svc := NewSessaoService(&stubPapelRepo{papel: repo.PapelUsuario{Papel: PapelMinistro}})

	if got := svc.ResolverPapel(context.Background(), uuid.New()); got != PapelMinistro {
		t.Fatalf("expected ministro, got %q", got)
	}
}

func TestResolverPapel_AusenteRetornaVazio(t *testing.T) {
	svc := NewSessaoService(&stubPapelRepo{err: repo.ErrNotFound})

	if got := svc.ResolverPapel(context.Background(), uuid.New()); got != "" {
		t.Fatalf("expected empty papel, got %q", got)
	}
}

func TestResolverPapel_FalhaDeConsultaRetornaVazio(t *testing.T) {
	svc := NewSessaoService(&stubPapelRepo{err: errors.New("conexão recusada")})

	if got := svc.ResolverPapel(context.Background(), uuid.New()); got != "" {
		t.Fatalf("expected empty papel on repo failure, got %q", got)
	}
}
