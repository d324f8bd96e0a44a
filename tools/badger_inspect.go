// Command badger_inspect dumps the stored accounts and projects as a table.
// Run it against a stopped server, or a copy of the data directory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	prefix := flag.String("prefix", "", "Prefix to scan (user:, project:, empty for both)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Created", "Entity ID", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			// The uid: entries are a secondary index, skip them
			if strings.HasPrefix(key, "uid:") {
				continue
			}

			err := item.Value(func(v []byte) error {
				row, ok := mapRow(key, v)
				if !ok {
					fmt.Printf("Skipping unreadable key %s\n", key)
					return nil
				}
				table.Append(row)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func mapRow(key string, val []byte) ([]string, bool) {
	switch {
	case strings.HasPrefix(key, "user:"):
		var u struct {
			ID        string    `json:"id"`
			Email     string    `json:"email"`
			CreatedAt time.Time `json:"createdAt"`
		}
		if err := json.Unmarshal(val, &u); err != nil {
			return nil, false
		}
		return []string{key, "USER", u.CreatedAt.Format("15:04:05"), shortID(u.ID), u.Email}, true

	case strings.HasPrefix(key, "project:"):
		var p struct {
			ID        string    `json:"id"`
			Name      string    `json:"name"`
			MemberIDs []string  `json:"memberIds"`
			CreatedAt time.Time `json:"createdAt"`
		}
		if err := json.Unmarshal(val, &p); err != nil {
			return nil, false
		}
		detail := fmt.Sprintf("%s (%d members)", p.Name, len(p.MemberIDs))
		return []string{key, "PROJECT", p.CreatedAt.Format("15:04:05"), shortID(p.ID), detail}, true
	}
	return []string{key, "RAW", "", "", fmt.Sprintf("%d bytes", len(val))}, true
}

// shortID keeps the first 8 characters for readability.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)
	return badger.Open(opts)
}
