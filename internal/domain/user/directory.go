package user

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/taskpad/internal/kv"
	"github.com/rpggio/taskpad/internal/validation"
)

// Demo directory entry created by SeedDemo.
const (
	DemoName  = "Demo Manager"
	DemoEmail = "demo@example.com"
	DemoRole  = "Project Manager"
)

// Directory stores team members as one JSON document under kv.KeyUsers.
type Directory struct {
	kv     *kv.Adapter
	now    func() time.Time
	logger *slog.Logger
}

// NewDirectory creates a directory. A nil now uses time.Now.
func NewDirectory(adapter *kv.Adapter, now func() time.Time, logger *slog.Logger) *Directory {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Directory{kv: adapter, now: now, logger: logger}
}

// List returns every member in insertion order.
func (d *Directory) List(ctx context.Context) []Member {
	members := kv.Get(ctx, d.kv, kv.KeyUsers, []Member{})
	if members == nil {
		return []Member{}
	}
	return members
}

// Get returns the member with id.
func (d *Directory) Get(ctx context.Context, id string) (*Member, error) {
	for _, m := range d.List(ctx) {
		if m.ID == id {
			found := m
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

// Create validates and adds a member.
func (d *Directory) Create(ctx context.Context, in CreateInput) (*Member, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if err := validateInput(in.Name, in.Email, in.Role); err != nil {
		return nil, err
	}

	members := d.List(ctx)
	if emailTaken(members, in.Email, "") {
		return nil, ErrDuplicateEmail
	}

	m := Member{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Email:    in.Email,
		Role:     in.Role,
		JoinedAt: d.now(),
	}
	if avatar := strings.TrimSpace(in.Avatar); avatar != "" {
		m.Avatar = &avatar
	}
	if !d.kv.Set(ctx, kv.KeyUsers, append(members, m)) {
		return nil, ErrPersist
	}
	d.logger.Debug("user created", "id", m.ID)
	return &m, nil
}

// Update merges p into the member with id.
func (d *Directory) Update(ctx context.Context, id string, p Patch) (*Member, error) {
	members := d.List(ctx)
	idx := -1
	for i := range members {
		if members[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrUserNotFound
	}

	m := members[idx]
	if p.Name != nil {
		m.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		m.Email = strings.TrimSpace(*p.Email)
	}
	if p.Role != nil {
		m.Role = strings.TrimSpace(*p.Role)
	}
	if p.Avatar != nil {
		if avatar := strings.TrimSpace(*p.Avatar); avatar != "" {
			m.Avatar = &avatar
		} else {
			m.Avatar = nil
		}
	}
	if err := validateInput(m.Name, m.Email, m.Role); err != nil {
		return nil, err
	}
	if emailTaken(members, m.Email, id) {
		return nil, ErrDuplicateEmail
	}

	members[idx] = m
	if !d.kv.Set(ctx, kv.KeyUsers, members) {
		return nil, ErrPersist
	}
	return &m, nil
}

// Delete removes the member with id. It returns false when the id is unknown.
func (d *Directory) Delete(ctx context.Context, id string) bool {
	members := d.List(ctx)
	kept := make([]Member, 0, len(members))
	for _, m := range members {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(members) {
		return false
	}
	return d.kv.Set(ctx, kv.KeyUsers, kept)
}

// SeedDemo adds the demo manager when the directory is empty. It reports
// whether an entry was created.
func (d *Directory) SeedDemo(ctx context.Context) (bool, error) {
	if len(d.List(ctx)) > 0 {
		return false, nil
	}
	if _, err := d.Create(ctx, CreateInput{Name: DemoName, Email: DemoEmail, Role: DemoRole}); err != nil {
		return false, err
	}
	return true, nil
}

func validateInput(name, email, role string) error {
	if name == "" {
		return fmt.Errorf("%w: Name is required", ErrInvalidInput)
	}
	if r := validation.Email(email); !r.IsValid {
		return fmt.Errorf("%w: %s", ErrInvalidInput, r.First())
	}
	if role == "" {
		return fmt.Errorf("%w: Role is required", ErrInvalidInput)
	}
	return nil
}

func emailTaken(members []Member, email, exceptID string) bool {
	for _, m := range members {
		if m.ID != exceptID && strings.EqualFold(m.Email, email) {
			return true
		}
	}
	return false
}
