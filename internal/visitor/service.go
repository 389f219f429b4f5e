package visitor

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/recepcao-app/recepcao/internal/hashing"
	"github.com/recepcao-app/recepcao/internal/notification"
)

// Service manages the visitor record lifecycle. Validation always runs
// before anything touches the repository.
type Service struct {
	repo     Repository
	ipSalt   string
	notifier notification.Notifier
}

// NewService creates a new visitor service. The notifier may be nil.
func NewService(repo Repository, ipSalt string, notifier notification.Notifier) *Service {
	return &Service{repo: repo, ipSalt: ipSalt, notifier: notifier}
}

// Create validates a submission and persists a new visitor. The remote
// address is stored only as a salted digest.
func (s *Service) Create(ctx context.Context, sub Submission, remoteAddr string) (Visitor, error) {
	if errs := Validate(sub); len(errs) > 0 {
		return Visitor{}, &ValidationError{Fields: errs}
	}
	idade, _ := parseIdade(sub.Idade)

	origem := sub.Origem
	if origem == "" {
		origem = DefaultOrigem
	}

	v := Visitor{
		ID:            uuid.New().String(),
		Nome:          strings.TrimSpace(sub.Nome),
		Telefone:      strings.TrimSpace(sub.Telefone),
		Idade:         idade,
		Consentimento: sub.Consentimento,
		CreatedAt:     time.Now().UTC(),
		IPHash:        hashing.Address(s.ipSalt, remoteAddr),
		Origem:        origem,
		Status:        StatusNovo,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Visitor{}, err
	}

	if s.notifier != nil {
		// Best effort; registration already succeeded.
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:      notification.KindVisitorRegistered,
			VisitorID: v.ID,
			Origem:    v.Origem,
		})
	}

	return v, nil
}

// Get retrieves a single visitor.
func (s *Service) Get(ctx context.Context, id string) (Visitor, error) {
	return s.repo.Get(ctx, id)
}

// List returns the requested page of matching visitors plus the total
// match count and the number of pages.
func (s *Service) List(ctx context.Context, f Filter, p Page) ([]Visitor, int, int, error) {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 1
	}
	visitors, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		return nil, 0, 0, err
	}
	pages := (total + p.PerPage - 1) / p.PerPage
	return visitors, total, pages, nil
}

// Update carries the mutable visitor fields. Nil pointers leave the
// stored value unchanged; Idade follows the Submission convention.
type Update struct {
	Telefone *string
	Idade    any
	Status   *string
	Nota     *string
}

// Update applies a partial update. Telefone and idade are re-validated
// with the creation rules; any violation rejects the whole update and
// leaves the record untouched.
func (s *Service) Update(ctx context.Context, id string, u Update) (Visitor, error) {
	errs := make(map[string]string)

	var telefone string
	if u.Telefone != nil {
		telefone = strings.TrimSpace(*u.Telefone)
		switch {
		case telefone == "":
			errs["telefone"] = msgRequired
		case digitCount(telefone) != phoneDigits:
			errs["telefone"] = msgInvalidFormat
		}
	}

	var idade int
	if u.Idade != nil {
		var msg string
		if idade, msg = parseIdade(u.Idade); msg != "" {
			errs["idade"] = msg
		} else if idade < minIdade || idade > maxIdade {
			errs["idade"] = msgOutOfRange
		}
	}

	if len(errs) > 0 {
		return Visitor{}, &ValidationError{Fields: errs}
	}

	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return Visitor{}, err
	}

	if u.Telefone != nil {
		v.Telefone = telefone
	}
	if u.Idade != nil {
		v.Idade = idade
	}
	if u.Status != nil {
		v.Status = *u.Status
	}
	if u.Nota != nil {
		v.Nota = u.Nota
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return Visitor{}, err
	}
	return v, nil
}

// Delete removes a visitor. A missing record is an explicit ErrNotFound,
// never a silent no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Stats aggregates totals as of the provided instant.
func (s *Service) Stats(ctx context.Context, now time.Time) (Stats, error) {
	return s.repo.Stats(ctx, now.Add(-7*24*time.Hour))
}
