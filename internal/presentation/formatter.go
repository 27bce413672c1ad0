// Package presentation renders command results as JSON or aligned text.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	json   bool
}

// NewFormatter creates a new formatter. asJSON switches every method to
// indented JSON output.
func NewFormatter(writer io.Writer, asJSON bool) *Formatter {
	return &Formatter{
		writer: writer,
		json:   asJSON,
	}
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) table(write func(w io.Writer)) error {
	tw := tabwriter.NewWriter(f.writer, 0, 4, 2, ' ', 0)
	write(tw)
	return tw.Flush()
}

// FormatIngredients lists ingredients, one per line.
func (f *Formatter) FormatIngredients(ingredients []IngredientDTO) error {
	if f.json {
		return f.encode(ingredients)
	}
	return f.table(func(w io.Writer) {
		for _, in := range ingredients {
			hidden := ""
			if in.Hidden {
				hidden = "(hidden)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", in.UID, in.Name, in.Mod, hidden)
		}
	})
}

// FormatIngredient prints every field of one ingredient.
func (f *Formatter) FormatIngredient(in IngredientDTO) error {
	if f.json {
		return f.encode(in)
	}
	return f.table(func(w io.Writer) {
		fmt.Fprintf(w, "uid:\t%s\n", in.UID)
		fmt.Fprintf(w, "type:\t%s\n", in.Type)
		fmt.Fprintf(w, "name:\t%s\n", in.Name)
		fmt.Fprintf(w, "mod:\t%s\n", in.Mod)
		if len(in.Tags) > 0 {
			fmt.Fprintf(w, "tags:\t%s\n", strings.Join(in.Tags, ", "))
		}
		if len(in.Aliases) > 0 {
			fmt.Fprintf(w, "aliases:\t%s\n", strings.Join(in.Aliases, ", "))
		}
		for _, line := range in.Tooltip {
			fmt.Fprintf(w, "\t%s\n", line)
		}
	})
}

// FormatRecipes prints recipes grouped under their category title.
func (f *Formatter) FormatRecipes(recipes []RecipeDTO) error {
	if f.json {
		return f.encode(recipes)
	}
	return f.table(func(w io.Writer) {
		category := ""
		for _, r := range recipes {
			if r.Category != category {
				category = r.Category
				fmt.Fprintf(w, "%s (%s)\n", r.Title, r.Category)
				if len(r.Catalysts) > 0 {
					fmt.Fprintf(w, "  made in:\t%s\n", strings.Join(r.Catalysts, ", "))
				}
			}
			name := r.Name
			if name == "" {
				name = "-"
			}
			if r.Error != "" {
				fmt.Fprintf(w, "  %s\terror: %s\n", name, r.Error)
				continue
			}
			var in, out []string
			for _, s := range r.Slots {
				alts := strings.Join(s.Ingredients, "|")
				switch s.Role {
				case "input":
					in = append(in, alts)
				case "output":
					out = append(out, alts)
				}
			}
			fmt.Fprintf(w, "  %s\t%s\t->\t%s\n", name, strings.Join(in, " + "), strings.Join(out, " + "))
		}
	})
}

// FormatBookmarks lists bookmarks in list order.
func (f *Formatter) FormatBookmarks(bookmarks []BookmarkDTO) error {
	if f.json {
		return f.encode(bookmarks)
	}
	return f.table(func(w io.Writer) {
		for i, b := range bookmarks {
			state := ""
			if b.Dormant {
				state = "(not loaded)"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, b.UID, b.ID, state)
		}
	})
}

// FormatTypes lists ingredient types or recipe categories with their counts.
func (f *Formatter) FormatTypes(title string, types []TypeDTO) error {
	if f.json {
		return f.encode(types)
	}
	return f.table(func(w io.Writer) {
		fmt.Fprintln(w, title)
		for _, t := range types {
			label := t.UID
			if t.Title != "" && t.Title != t.UID {
				label = t.Title + " (" + t.UID + ")"
			}
			fmt.Fprintf(w, "  %s\t%d\t%s\n", label, t.Count, strings.Join(t.Catalysts, ", "))
		}
	})
}

// FormatResult encodes any result as JSON regardless of the output mode.
func (f *Formatter) FormatResult(result any) error {
	return f.encode(result)
}
