package domain

import "strings"

type Actor struct {
	DisplayName string
	UUID        string
	Username    string
	Email       string
	Image       string
}

// Activity is the builder for activity entities. Verb and content are
// mandatory, an actor, when given, must name itself.
type Activity struct {
	Verb     string
	Category string
	Content  string
	Title    string
	Actor    *Actor
	Object   Entity
}

func (a Activity) Validate() error {
	if strings.TrimSpace(a.Verb) == "" {
		return InvalidInput("activity verb is required")
	}
	if strings.TrimSpace(a.Content) == "" && strings.TrimSpace(a.Title) == "" {
		return InvalidInput("activity content is required")
	}
	if a.Actor != nil && strings.TrimSpace(a.Actor.DisplayName) == "" && strings.TrimSpace(a.Actor.Username) == "" {
		return InvalidInput("activity actor needs a display name or username")
	}

	return nil
}

func (a Activity) IsValid() bool {
	return a.Validate() == nil
}

// Entity renders the activity as the document posted to the service.
func (a Activity) Entity() (Entity, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	entity := Entity{
		"type": "activity",
		"verb": a.Verb,
	}
	if a.Category != "" {
		entity["category"] = a.Category
	}
	if a.Content != "" {
		entity["content"] = a.Content
	}
	if a.Title != "" {
		entity["title"] = a.Title
	}
	if a.Actor != nil {
		actor := map[string]any{"objectType": "person"}
		for key, value := range map[string]string{
			"displayName": a.Actor.DisplayName,
			"uuid":        a.Actor.UUID,
			"username":    a.Actor.Username,
			"email":       a.Actor.Email,
		} {
			if value != "" {
				actor[key] = value
			}
		}
		if a.Actor.Image != "" {
			actor["image"] = map[string]any{"url": a.Actor.Image, "width": 80, "height": 80}
		}
		entity["actor"] = actor
	}
	if len(a.Object) > 0 {
		entity["object"] = map[string]any(a.Object)
	}

	return entity, nil
}
