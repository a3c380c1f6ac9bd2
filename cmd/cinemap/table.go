package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cinemap/internal/catalog/tmdb"
	"cinemap/internal/movie"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:           i + 1,
			Align:            align,
			AlignHeader:      text.AlignLeft,
			WidthMax:         48,
			WidthMaxEnforcer: text.WrapSoft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func renderMovieTable(movies []movie.Movie, colorize bool) string {
	headers := []string{"ID", "Title", "Year", "Director", "Genres", "Stars", "Rating"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignRight}
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10),
			m.Title,
			formatYear(m.Year),
			m.Director,
			m.Genres,
			renderStars(m, colorize),
			movie.DisplayRating(m),
		})
	}
	return renderTable(headers, rows, aligns)
}

func renderSearchTable(results []tmdb.SearchResult) string {
	headers := []string{"#", "ID", "Title", "Released", "Votes"}
	aligns := []columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight}
	rows := make([][]string, 0, len(results))
	for i, r := range results {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(r.ID, 10),
			r.Title,
			r.ReleaseDate,
			fmt.Sprintf("%.1f", r.VoteAverage),
		})
	}
	return renderTable(headers, rows, aligns)
}

func formatYear(year *int) string {
	if year == nil {
		return "-"
	}
	return strconv.Itoa(*year)
}
