package client

import (
	"encoding/json"

	"github.com/bnema/usergrid-go/internal/domain"
)

func decodeAPIResponse(body []byte) (*domain.APIResponse, error) {
	var resp domain.APIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func asAPIResponse(body []byte) (any, error) {
	return decodeAPIResponse(body)
}

func asEntities(body []byte) (any, error) {
	resp, err := decodeAPIResponse(body)
	if err != nil {
		return nil, err
	}
	if resp.Entities == nil {
		return []domain.Entity{}, nil
	}
	return resp.Entities, nil
}

func asEntity(body []byte) (any, error) {
	resp, err := decodeAPIResponse(body)
	if err != nil {
		return nil, err
	}
	entity, _ := resp.FirstEntity()
	return entity, nil
}

func asMessages(body []byte) (any, error) {
	resp, err := decodeAPIResponse(body)
	if err != nil {
		return nil, err
	}
	if resp.Messages == nil {
		return []domain.Message{}, nil
	}
	return resp.Messages, nil
}

// asEntitiesByPath keys the entities by their path property, falling back to
// the uuid for entities without one.
func asEntitiesByPath(body []byte) (any, error) {
	resp, err := decodeAPIResponse(body)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Entity, len(resp.Entities))
	for _, entity := range resp.Entities {
		key := entity.String("path")
		if key == "" {
			key = entity.UUID()
		}
		out[key] = entity
	}
	return out, nil
}

// asUser reads the user of a token grant, or the first user entity of any
// other answer.
func asUser(body []byte) (any, error) {
	resp, err := decodeAPIResponse(body)
	if err != nil {
		return nil, err
	}
	if resp.User != nil {
		return resp.User, nil
	}
	entity, ok := resp.FirstEntity()
	if !ok {
		return (*domain.User)(nil), nil
	}
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
