// Package fallback supplies the static sample data substituted when an
// endpoint is unreachable, undecodable, or yields nothing extractable. Each
// slot has its own sample set; substituting one slot never touches another.
package fallback

import (
	"fmt"
	"strings"
	"time"

	"statboard/models"
)

// Policy produces sample records relative to a fixed reference time so a
// whole refresh cycle degrades consistently and tests stay deterministic.
type Policy struct {
	now time.Time
}

// NewPolicy returns a Policy anchored at now.
func NewPolicy(now time.Time) *Policy {
	return &Policy{now: now}
}

func (p *Policy) at(ago time.Duration) *time.Time {
	t := p.now.Add(-ago)
	return &t
}

// Templates returns the sample template set.
func (p *Policy) Templates() []models.ContentRecord {
	return []models.ContentRecord{
		{ID: "t1", Title: "Blog Post - SEO", Type: models.LabelBlogPost, CreatedAt: p.at(3 * 24 * time.Hour), Uses: 24},
		{ID: "t2", Title: "Social Media Short", Type: models.LabelSocialMedia, CreatedAt: p.at(7 * 24 * time.Hour), Uses: 41},
		{ID: "t3", Title: "Product Launch Ad", Type: models.LabelAdCopy, CreatedAt: p.at(1 * 24 * time.Hour), Uses: 12},
		{ID: "t4", Title: "Welcome Email", Type: models.LabelEmail, CreatedAt: p.at(10 * 24 * time.Hour), Uses: 33},
		{ID: "t5", Title: "Newsletter Longform", Type: models.LabelEmail, CreatedAt: p.at(2 * 24 * time.Hour), Uses: 9},
	}
}

// Generated returns the sample generated-content set.
func (p *Policy) Generated() []models.ContentRecord {
	return []models.ContentRecord{
		{ID: "g1", Title: "SEO Blog for Product X", Type: models.LabelBlogPost, CreatedAt: p.at(2 * time.Hour), Uses: 0},
		{ID: "g2", Title: "Facebook Ad Copy", Type: models.LabelAdCopy, CreatedAt: p.at(6 * time.Hour), Uses: 0},
		{ID: "g3", Title: "Onboarding Email Series", Type: models.LabelEmail, CreatedAt: p.at(24 * time.Hour), Uses: 0},
	}
}

// Users returns the sample user set.
func (p *Policy) Users() []models.UserRecord {
	names := []string{"Alice", "Bob", "Carol"}
	users := make([]models.UserRecord, 0, len(names))
	for i, name := range names {
		users = append(users, models.UserRecord{
			Key:       fmt.Sprintf("sample-%d", i+1),
			Name:      name,
			Email:     fmt.Sprintf("%s@example.com", strings.ToLower(name)),
			CreatedAt: p.now.Add(-time.Duration(i+1) * 24 * time.Hour),
		})
	}
	return users
}

// Activity returns the sample activity rows the original dashboard shipped
// with, used when no activity endpoint responds.
func (p *Policy) Activity() []map[string]any {
	rows := []struct{ action, name string }{
		{"Logged In", "Alice"},
		{"Created Content", "Bob"},
		{"Logged In", "Alice"},
		{"Registered", "Carol"},
		{"Updated Profile", "David"},
		{"Logged In", "Bob"},
		{"Logged In", "Eve"},
		{"Registered", "Frank"},
		{"Logged In", "Alice"},
		{"Logged In", "David"},
	}
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, map[string]any{"action": r.action, "name": r.name})
	}
	return out
}
