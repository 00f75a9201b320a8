package ingestion

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

// resumeExtensions lists the file types read from a resume directory
var resumeExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// LoadResumes reads every .txt and .md file in dir, in name order. Each file is
// cleaned with CleanText and named after its base name without extension. Files
// that are empty after cleaning are skipped.
func LoadResumes(dir string) ([]types.ResumeText, *SourceInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, &Error{Path: dir, Message: "failed to read resume directory", Cause: err}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !resumeExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var all []byte
	resumes := make([]types.ResumeText, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, &Error{Path: path, Message: "failed to read resume", Cause: err}
		}
		all = append(all, content...)

		text := CleanText(string(content))
		if text == "" {
			continue
		}
		resumes = append(resumes, types.ResumeText{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Text: text,
		})
	}

	return resumes, NewSourceInfo(dir, KindResumes, all, len(resumes)), nil
}
