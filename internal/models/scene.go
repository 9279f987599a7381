package models

import "encoding/json"

// Time-of-day markers as they appear in script breakdowns.
const (
	TimeDay   = "DAY"
	TimeDusk  = "DUSK"
	TimeNight = "NIGHT"
)

// DefaultSceneDurationMinutes is assumed when a scene carries no estimate.
const DefaultSceneDurationMinutes = 60

// Actor is one cast member attached to a scene. The shooting schedule stores
// {"name": ...} while the production schedule stores {"actor_name": ...}, so
// both spellings are accepted.
type Actor struct {
	Name string `json:"name"`
}

func (a *Actor) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name      string `json:"name"`
		ActorName string `json:"actor_name"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.Name = aux.Name
	if a.Name == "" {
		a.Name = aux.ActorName
	}
	return nil
}

// Extra is a background role. Source data stores extras either as plain
// strings or as {"role": ...} objects.
type Extra string

func (e *Extra) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = Extra(s)
		return nil
	}
	var aux struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Extra(aux.Role)
	return nil
}

// Scene is one shooting unit. Read-only to the scheduling core.
type Scene struct {
	SceneNumber              int     `json:"scene_number"`
	SceneTitle               string  `json:"scene_title"`
	Location                 string  `json:"location"`
	TimeOfDay                string  `json:"time_of_day"`
	EstimatedDurationMinutes int     `json:"estimated_duration_minutes"`
	Actors                   []Actor `json:"actors,omitempty"`
	Extras                   []Extra `json:"extras,omitempty"`
}

func (s *Scene) UnmarshalJSON(data []byte) error {
	type sceneAlias Scene
	var aux struct {
		sceneAlias
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Scene(aux.sceneAlias)
	if s.SceneTitle == "" {
		s.SceneTitle = aux.Title
	}
	return nil
}

// EffectiveDuration returns the scene duration with the documented default
// applied for missing or nonsense estimates.
func (s *Scene) EffectiveDuration() int {
	if s.EstimatedDurationMinutes <= 0 {
		return DefaultSceneDurationMinutes
	}
	return s.EstimatedDurationMinutes
}

// ActorNames returns the non-empty cast names in scene order.
func (s *Scene) ActorNames() []string {
	names := make([]string, 0, len(s.Actors))
	for _, a := range s.Actors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

// ExtraNames returns the extras as plain strings.
func (s *Scene) ExtraNames() []string {
	names := make([]string, 0, len(s.Extras))
	for _, e := range s.Extras {
		if e != "" {
			names = append(names, string(e))
		}
	}
	return names
}
