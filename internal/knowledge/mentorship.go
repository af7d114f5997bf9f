package knowledge

import "github.com/jonathan/directionwise/internal/types"

// Mentorship returns the stories told for a field. Fields without dedicated
// stories get the generic samples; fallback reports when that happened.
func (b *Base) Mentorship(fieldID string) (stories []types.MentorshipStory, fallback bool) {
	if s := b.stories[fieldID]; len(s) > 0 {
		return s, false
	}
	return b.samples, true
}

// MentorshipByCareer groups a field's stories by career, keeping story order.
func (b *Base) MentorshipByCareer(fieldID string) map[string][]types.MentorshipStory {
	grouped := make(map[string][]types.MentorshipStory)
	for _, s := range b.stories[fieldID] {
		grouped[s.Career] = append(grouped[s.Career], s)
	}
	return grouped
}
