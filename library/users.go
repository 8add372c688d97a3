package library

import "context"

// UserState is a rendered snapshot of the user panel.
type UserState = EntityState[User, UserDraft, UserDraft]

// UserPanel owns the patron lookup, create and edit forms.
type UserPanel struct {
	*panel[User, UserDraft, UserDraft]
}

func NewUserPanel(backend Backend, notify Notifier) *UserPanel {
	ops := panelOps[User, UserDraft, UserDraft]{
		get: func(ctx context.Context, id string) (*User, error) {
			u, err := backend.GetUser(ctx, id)
			if err != nil || u == nil {
				return nil, err
			}
			user := *u
			user.ID = id
			return &user, nil
		},
		create: backend.CreateUser,
		update: backend.UpdateUser,
		remove: backend.DeleteUser,
		seed: func(u User) UserDraft {
			return UserDraft{Name: u.Name}
		},
	}
	text := panelText{
		notFound:     "User not found",
		createFailed: "Failed to create user",
		updateFailed: "Failed to update user",
		deleteFailed: "Failed to delete user",
		created:      "User created!",
		deleted:      "User deleted!",
	}
	return &UserPanel{newPanel("user", ops, text, notify)}
}
