package dashboard

import "metrics-dashboard/pkg/api"

const (
	EmptyListMessage = "No models found."
	EmptyAdminHint   = "Add your first model to get started!"
)

type Card struct {
	Record    api.ModelRecord
	CanEdit   bool
	CanDelete bool
}

// View is what the model list shows. Mutation affordances are only present
// for admins.
type View struct {
	Count   int
	Loading bool
	Error   string
	CanAdd  bool
	Cards   []Card
	Empty   string
}

func buildView(models []api.ModelRecord, auth Auth, loading bool, errMsg string) View {
	v := View{
		Count:   len(models),
		Loading: loading,
		Error:   errMsg,
		CanAdd:  auth.IsAdmin,
		Cards:   make([]Card, 0, len(models)),
	}

	for _, m := range models {
		v.Cards = append(v.Cards, Card{Record: m, CanEdit: auth.IsAdmin, CanDelete: auth.IsAdmin})
	}

	if len(models) == 0 {
		v.Empty = EmptyListMessage
		if auth.IsAdmin {
			v.Empty += " " + EmptyAdminHint
		}
	}

	return v
}
