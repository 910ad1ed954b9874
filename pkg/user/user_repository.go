package user

import (
	"context"

	"wastenot/entities"
	"wastenot/pkg/appstate"
	"wastenot/pkg/store"
)

type (
	UserRepository interface {
		GetUser() (*entities.User, bool)
		SaveUser(ctx context.Context, user entities.User) error
		DeleteUser(ctx context.Context) error
		GetPreferences() entities.Preferences
		SavePreferences(ctx context.Context, prefs entities.Preferences) error
	}

	userRepository struct {
		state *appstate.State
	}
)

func NewUserRepository(state *appstate.State) UserRepository {
	return &userRepository{state: state}
}

func (r *userRepository) GetUser() (*entities.User, bool) {
	u := r.state.Snapshot().User
	return u, u != nil
}

func (r *userRepository) SaveUser(ctx context.Context, user entities.User) error {
	return r.state.Update(ctx, func(snap *appstate.Snapshot) ([]string, error) {
		snap.User = &user
		return []string{store.KeyUser}, nil
	})
}

func (r *userRepository) DeleteUser(ctx context.Context) error {
	return r.state.Update(ctx, func(snap *appstate.Snapshot) ([]string, error) {
		snap.User = nil
		return []string{store.KeyUser}, nil
	})
}

// GetPreferences returns the stored settings merged over the defaults.
func (r *userRepository) GetPreferences() entities.Preferences {
	return r.state.Snapshot().Preferences.Clone()
}

func (r *userRepository) SavePreferences(ctx context.Context, prefs entities.Preferences) error {
	return r.state.Update(ctx, func(snap *appstate.Snapshot) ([]string, error) {
		merged := snap.Preferences.Clone()
		for k, v := range prefs {
			merged[k] = v
		}
		snap.Preferences = merged
		return []string{store.KeyPreferences}, nil
	})
}
