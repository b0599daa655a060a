package rbac

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func buildCatalog(actions map[string][]string) []Permission {
	title := cases.Title(language.English)
	var out []Permission
	for resource, acts := range actions {
		for _, a := range acts {
			out = append(out, Permission{
				Resource: resource,
				Action:   a,
				Label:    title.String(a) + " " + strings.ReplaceAll(resource, "_", " "),
				Category: categories[resource],
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

func keys(perms []Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = p.Key()
	}
	return out
}

func without(list []string, drop ...string) []string {
	return slices.DeleteFunc(slices.Clone(list), func(k string) bool {
		return slices.Contains(drop, k)
	})
}
