package moderation

import (
	"bufio"
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed words/*.txt
var wordsFolder embed.FS

// WordList is the merged content of the embedded per-language word files.
type WordList struct {
	Languages []string
	Words     []string
}

// LoadEmbeddedWords reads every words/<lang>.txt file shipped with the
// binary. Lines are trimmed; empty lines and '#' comments are skipped.
// Duplicates across languages are collapsed.
func LoadEmbeddedWords() (WordList, error) {
	entries, err := fs.ReadDir(wordsFolder, "words")
	if err != nil {
		return WordList{}, err
	}

	seen := make(map[string]struct{})
	var list WordList
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		list.Languages = append(list.Languages, lang)

		file, err := wordsFolder.Open(path.Join("words", entry.Name()))
		if err != nil {
			return WordList{}, err
		}

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			word := strings.TrimSpace(scanner.Text())
			if word == "" || strings.HasPrefix(word, "#") {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			list.Words = append(list.Words, word)
		}
		_ = file.Close()
		if err := scanner.Err(); err != nil {
			return WordList{}, err
		}
	}
	return list, nil
}
