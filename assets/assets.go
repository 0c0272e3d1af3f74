// Package assets embeds the SQL schema applied to the SQLite store.
package assets

import (
	"embed"
	"path"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var embedFS embed.FS

// SchemaFile is one embedded SQL file.
type SchemaFile struct {
	Name string
	SQL  string
}

// Schema returns the embedded SQL files ordered by name.
func Schema() ([]SchemaFile, error) {
	entries, err := embedFS.ReadDir("migrations")
	if err != nil {
		return nil, err
	}

	files := make([]SchemaFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		content, err := embedFS.ReadFile(path.Join("migrations", entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, SchemaFile{Name: entry.Name(), SQL: string(content)})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return files, nil
}
