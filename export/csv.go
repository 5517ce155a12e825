package export

import (
	"encoding/csv"
	"io"
	"time"

	"gallery/models"
)

// DateLayout is used for wish dates in CSV and PDF exports, always in UTC
const DateLayout = "02/01/2006, 15:04:05"

var csvHeader = []string{"Name", "Message", "Date"}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// WriteWishesCSV writes an RFC 4180 document with CRLF line endings, in the given order
func WriteWishesCSV(w io.Writer, wishes []models.Wish) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, wish := range wishes {
		if err := cw.Write([]string{wish.Name, wish.Message, FormatDate(wish.CreatedAt)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
