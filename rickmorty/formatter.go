package rickmorty

import (
	"fmt"
	"strings"
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails bool
}

// ConsoleFormatter provides console output formatting for characters
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatCharacterList formats a list of characters for console display
func (f *ConsoleFormatter) FormatCharacterList(characters []Character, options FormatOptions) string {
	if len(characters) == 0 {
		return "No characters found"
	}

	var sb strings.Builder

	// Header
	sb.WriteString("\nCharacter")
	if len(characters) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(characters))

	for i, character := range characters {
		isLast := i == len(characters)-1
		f.formatCharacter(&sb, character, isLast, options)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatCharacterDetail formats the full detail card for one character
func (f *ConsoleFormatter) FormatCharacterDetail(c Character) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", c.Name)
	sb.WriteString(strings.Repeat("━", max(len([]rune(c.Name)), 20)))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Status:    %s\n", c.Status)
	fmt.Fprintf(&sb, "Species:   %s\n", c.Species)
	fmt.Fprintf(&sb, "Gender:    %s %s\n", c.Gender.Symbol(), c.Gender)

	sb.WriteString("\nOrigin\n")
	if c.Origin.IsUnknown() {
		sb.WriteString("  Unknown\n  Origin not identified\n")
	} else {
		fmt.Fprintf(&sb, "  %s\n  Place of origin\n", c.Origin.Name)
	}

	sb.WriteString("\nLast known location\n")
	if c.Location.IsUnknown() {
		sb.WriteString("  Unknown\n  Current location not identified\n")
	} else {
		fmt.Fprintf(&sb, "  %s\n  Current location of the character\n", c.Location.Name)
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Episodes:  %d\n", c.EpisodeCount())
	fmt.Fprintf(&sb, "Type:      %s\n", TypeLabel(c))
	if c.Image != "" {
		fmt.Fprintf(&sb, "Image:     %s\n", c.Image)
	}
	fmt.Fprintf(&sb, "\nID: #%d\n", c.ID)

	return sb.String()
}

// TypeLabel returns the character's subtype, or "Common" when the API has none
func TypeLabel(c Character) string {
	if c.Type == "" {
		return "Common"
	}
	return c.Type
}

// formatCharacter formats a single list entry
func (f *ConsoleFormatter) formatCharacter(sb *strings.Builder, c Character, isLast bool, options FormatOptions) {
	prefix := "├"
	if isLast {
		prefix = "╰"
	}

	fmt.Fprintf(sb, "%s── #%d %s\n", prefix, c.ID, c.Name)

	indent := "│   "
	if isLast {
		indent = "    "
	}

	fmt.Fprintf(sb, "%s%s - %s\n", indent, c.Status, c.Species)

	if !options.ShowDetails {
		return
	}

	if !c.Location.IsUnknown() {
		fmt.Fprintf(sb, "%sLocation: %s\n", indent, c.Location.Name)
	}
	fmt.Fprintf(sb, "%sEpisodes: %d\n", indent, c.EpisodeCount())
}
