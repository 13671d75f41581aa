package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hongminglow/linkinbio-be/internal/models"
	"github.com/hongminglow/linkinbio-be/internal/storage"
)

// LinkInput is one link as submitted by the owner.
type LinkInput struct {
	Title string
	URL   string
}

// ProfileUpdate is the full desired state of a profile. Name and Bio must be
// present but may be empty. Links replaces the stored list wholesale.
type ProfileUpdate struct {
	Name  *string
	Bio   *string
	Links []LinkInput
}

// ProfileEditor reads profiles and applies owner edits.
type ProfileEditor struct {
	store storage.Store
}

// NewProfileEditor creates a ProfileEditor over store.
func NewProfileEditor(store storage.Store) *ProfileEditor {
	return &ProfileEditor{store: store}
}

// PublicProfile returns the seeded profile, the earliest registered user.
func (e *ProfileEditor) PublicProfile(ctx context.Context) (models.Profile, error) {
	user, err := e.store.Users().First(ctx)
	if err != nil {
		return models.Profile{}, translateNotFound(err)
	}
	return e.withLinks(ctx, user)
}

// GetProfile returns the profile owned by userID.
func (e *ProfileEditor) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	user, err := e.store.Users().FindByID(ctx, userID)
	if err != nil {
		return models.Profile{}, translateNotFound(err)
	}
	return e.withLinks(ctx, user)
}

// UpdateProfile sets name and bio and replaces every link of userID in one
// transaction. Links without both a title and a url are dropped.
func (e *ProfileEditor) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) error {
	if update.Name == nil || update.Bio == nil {
		return fmt.Errorf("%w: name and bio are required", ErrValidation)
	}
	links := validLinks(userID, update.Links)

	err := e.store.WithTx(ctx, func(tx storage.Tx) error {
		if err := tx.Users().UpdateProfile(ctx, userID, *update.Name, *update.Bio); err != nil {
			return err
		}
		if err := tx.Links().DeleteAllByUser(ctx, userID); err != nil {
			return err
		}
		return tx.Links().InsertMany(ctx, links)
	})
	if err != nil {
		return translateNotFound(err)
	}
	return nil
}

func (e *ProfileEditor) withLinks(ctx context.Context, user models.User) (models.Profile, error) {
	links, err := e.store.Links().ListByUser(ctx, user.ID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("list links: %w", err)
	}
	return models.NewProfile(user, links), nil
}

func validLinks(userID int64, in []LinkInput) []models.Link {
	out := make([]models.Link, 0, len(in))
	for _, l := range in {
		title := strings.TrimSpace(l.Title)
		url := strings.TrimSpace(l.URL)
		if title == "" || url == "" {
			continue
		}
		out = append(out, models.Link{UserID: userID, Title: title, URL: url})
	}
	return out
}

func translateNotFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
