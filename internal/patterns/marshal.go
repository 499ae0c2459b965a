package patterns

import "encoding/json"

// MarshalJSON exposes a Pattern by its stable identity (id, name,
// severity) rather than its internal compiled regex state, which the hot
// path never re-exposes as strings per the load-time translation design.
func (p *Pattern) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Severity string `json:"severity"`
	}{
		ID:       p.ID,
		Name:     p.Name,
		Severity: p.Severity.String(),
	})
}
