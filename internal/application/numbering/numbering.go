// Package numbering emite los números visibles de documento (NNNNN/AAAA),
// uno por tipo de documento, sobre contadores atómicos por (clave, año).
//
// El número se asigna con Next DENTRO de la transacción de commit del
// documento: lo que se muestra es lo que quedó persistido, no hay divergencia
// entre previsualización y asignación. Peek existe solo para pre-llenar
// formularios y se documenta como provisional.
package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Claves de contador, una por tipo de documento.
const (
	KeyPurchase     = "buyFactId"
	KeyDeliveryNote = "sellBonId"
	KeyInvoice      = "sellFactId"
	KeyProforma     = "proformaId"
)

// Format arma el número visible: secuencia con padding a 5 dígitos + año.
func Format(seq int64, year int) string {
	return fmt.Sprintf("%05d/%d", seq, year)
}

// NextNumber consume el contador (clave, año actual) y devuelve el número
// formateado. Pasar el SequenceRepository atado a la transacción del commit
// para que número y documento queden en la misma unidad atómica.
func NextNumber(ctx context.Context, seqs repository.SequenceRepository, key string, now time.Time) (string, error) {
	seq, err := seqs.Next(ctx, key, now.Year())
	if err != nil {
		return "", err
	}
	return Format(seq, now.Year()), nil
}

// Service expone Peek para los formularios (lectura sin consumo).
type Service struct {
	seqs repository.SequenceRepository
	now  func() time.Time
}

// NewService construye el servicio de numeración.
func NewService(seqs repository.SequenceRepository) *Service {
	return &Service{seqs: seqs, now: time.Now}
}

// Peek devuelve el número que Next asignaría ahora mismo. Dos usuarios
// previsualizando a la vez verán el mismo valor; el definitivo es el del
// commit.
func (s *Service) Peek(ctx context.Context, key string) (string, error) {
	now := s.now()
	seq, err := s.seqs.Peek(ctx, key, now.Year())
	if err != nil {
		return "", err
	}
	return Format(seq, now.Year()), nil
}
