package store

import (
	"database/sql"
	"fmt"
)

type seedWord struct {
	headword        string
	transliteration string
	translation     string
	difficulty      int
	category        string
}

// seedCatalog is the built-in starter vocabulary. Every entry starts
// as catalog-only; words add / learn move them into the learner's
// list.
var seedCatalog = []seedWord{
	// Basics
	{"сәлем", "sälem", "hello", 1, "basics"},
	{"рақмет", "raqmet", "thank you", 1, "basics"},
	{"иә", "iä", "yes", 1, "basics"},
	{"жоқ", "joq", "no", 1, "basics"},
	{"кешіріңіз", "keşiriñiz", "excuse me", 2, "basics"},
	{"сау болыңыз", "sau bolyñyz", "goodbye", 1, "basics"},

	// Family
	{"ана", "ana", "mother", 1, "family"},
	{"әке", "äke", "father", 1, "family"},
	{"бала", "bala", "child", 1, "family"},
	{"аға", "ağa", "older brother", 1, "family"},
	{"әпке", "äpke", "older sister", 1, "family"},
	{"отбасы", "otbasy", "family", 2, "family"},
	{"немере", "nemere", "grandchild", 2, "family"},

	// Nature
	{"су", "su", "water", 1, "nature"},
	{"тау", "tau", "mountain", 1, "nature"},
	{"аспан", "aspan", "sky", 1, "nature"},
	{"күн", "kün", "sun", 1, "nature"},
	{"ай", "ai", "moon", 1, "nature"},
	{"жел", "jel", "wind", 2, "nature"},
	{"өзен", "özen", "river", 2, "nature"},
	{"дала", "dala", "steppe", 2, "nature"},
	{"орман", "orman", "forest", 2, "nature"},

	// Food
	{"нан", "nan", "bread", 1, "food"},
	{"ет", "et", "meat", 1, "food"},
	{"сүт", "süt", "milk", 1, "food"},
	{"шай", "şai", "tea", 1, "food"},
	{"алма", "alma", "apple", 1, "food"},
	{"қымыз", "qymyz", "fermented mare's milk", 3, "food"},
	{"бауырсақ", "bauyrsaq", "fried dough", 3, "food"},

	// Animals
	{"ат", "at", "horse", 1, "animals"},
	{"ит", "it", "dog", 1, "animals"},
	{"мысық", "mysyq", "cat", 1, "animals"},
	{"қой", "qoi", "sheep", 1, "animals"},
	{"түйе", "tüie", "camel", 2, "animals"},
	{"бүркіт", "bürkit", "golden eagle", 3, "animals"},

	// Time
	{"таң", "tañ", "morning", 1, "time"},
	{"түн", "tün", "night", 1, "time"},
	{"бүгін", "bügin", "today", 1, "time"},
	{"ертең", "erteñ", "tomorrow", 2, "time"},
	{"кеше", "keşe", "yesterday", 2, "time"},
	{"қыс", "qys", "winter", 1, "time"},
	{"жаз", "jaz", "summer", 1, "time"},
	{"көктем", "köktem", "spring", 2, "time"},
	{"күз", "küz", "autumn", 2, "time"},

	// Places
	{"үй", "üi", "house", 1, "places"},
	{"қала", "qala", "city", 1, "places"},
	{"ауыл", "auyl", "village", 2, "places"},
	{"жол", "jol", "road", 1, "places"},
	{"мектеп", "mektep", "school", 1, "places"},
	{"кітапхана", "kitaphana", "library", 3, "places"},

	// Everyday
	{"кітап", "kitap", "book", 1, "everyday"},
	{"дос", "dos", "friend", 1, "everyday"},
	{"жұмыс", "jumys", "work", 2, "everyday"},
	{"ақша", "aqşa", "money", 2, "everyday"},
	{"тіл", "til", "language", 2, "everyday"},
	{"сөз", "söz", "word", 1, "everyday"},
	{"сөздік", "sözdik", "dictionary", 2, "everyday"},
	{"әдемі", "ädemi", "beautiful", 2, "everyday"},
	{"жақсы", "jaqsy", "good", 1, "everyday"},
	{"үлкен", "ülken", "big", 1, "everyday"},
	{"кішкентай", "kişkentai", "small", 2, "everyday"},
}

// seedWords populates the catalog on first run. A non-empty words
// table means the database was already seeded (or the user imported
// their own catalog) and is left alone.
func seedWords(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM words`).Scan(&count); err != nil {
		return fmt.Errorf("count words: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO words
		(headword, transliteration, translation, difficulty_level, category_name)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare seed insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range seedCatalog {
		if _, err := stmt.Exec(w.headword, w.transliteration, w.translation, w.difficulty, w.category); err != nil {
			return fmt.Errorf("seed %q: %w", w.headword, err)
		}
	}

	return tx.Commit()
}
