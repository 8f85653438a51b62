package home

import (
	"embed"
	"html/template"
	"io"
	"slices"
)

type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
)

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Route       string `json:"route"`
}

type QuickAction struct {
	Label   string  `json:"label"`
	Route   string  `json:"route"`
	Variant Variant `json:"variant"`
}

// Display order matters; the landing page renders these top to bottom.
var features = [...]Feature{
	{Title: "Live Draft Room", Description: "Draft with your league in real time, with the commissioner at the controls.", Icon: "🏈", Route: "/draft"},
	{Title: "Player Rankings", Description: "Sort and filter players by position, projection and bye week.", Icon: "📊", Route: "/players"},
	{Title: "Mock Drafts", Description: "Practice your strategy against the clock before draft day.", Icon: "🎯", Route: "/mock-draft"},
	{Title: "League Management", Description: "Set roster slots, scoring rules and draft order for your league.", Icon: "🏆", Route: "/leagues"},
	{Title: "Team Rosters", Description: "Track every pick and see how each roster shapes up.", Icon: "📋", Route: "/teams"},
	{Title: "Draft Recap", Description: "Review every round once the draft is complete.", Icon: "📝", Route: "/recap"},
}

var quickActions = [...]QuickAction{
	{Label: "Create League", Route: "/leagues/new", Variant: VariantPrimary},
	{Label: "Join League", Route: "/leagues/join", Variant: VariantSecondary},
	{Label: "Enter Draft Room", Route: "/draft", Variant: VariantSecondary},
}

// Features returns a copy of the feature cards in display order.
func Features() []Feature { return slices.Clone(features[:]) }

// QuickActions returns a copy of the hero links in display order.
func QuickActions() []QuickAction { return slices.Clone(quickActions[:]) }

//go:embed templates/home.html
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/home.html"))

func Render(w io.Writer) error {
	data := struct {
		Features     []Feature
		QuickActions []QuickAction
	}{Features: Features(), QuickActions: QuickActions()}
	return tmpl.ExecuteTemplate(w, "home", data)
}
