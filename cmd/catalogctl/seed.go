package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	"library-catalog/pkg/database"
	"library-catalog/pkg/logger"
)

// sampleBooks là bộ dữ liệu mẫu của catalog, cover dùng ảnh mặc định
var sampleBooks = []struct {
	Title  string
	Author string
	Year   int
	Genre  string
}{
	{"Book 1", "Author 1", 2020, "Fiction"},
	{"Book 2", "Author 2", 2015, "Mystery"},
	{"Book 3", "Author 3", 2018, "Science Fiction"},
	{"Book 4", "Author 4", 2012, "Fantasy"},
	{"Book 5", "Author 5", 2017, "Thriller"},
	{"Book 6", "Author 1", 2019, "Romance"},
	{"Book 7", "Author 3", 2016, "Historical Fiction"},
	{"Book 8", "Author 2", 2021, "Mystery"},
	{"Book 9", "Author 4", 2014, "Fantasy"},
	{"Book 10", "Author 5", 2022, "Science Fiction"},
}

// seedFields build danh sách BookFields cho sample data
func seedFields(defaultCover string) []model.BookFields {
	fields := make([]model.BookFields, 0, len(sampleBooks))
	for _, b := range sampleBooks {
		fields = append(fields, model.BookFields{
			CoverURL:        defaultCover,
			Title:           b.Title,
			Author:          b.Author,
			PublicationYear: b.Year,
			MainGenre:       b.Genre,
			Description:     fmt.Sprintf("Description of %s", b.Title),
		})
	}
	return fields
}

// seedBooks insert sample data. Catalog đã có dữ liệu thì bỏ qua.
func seedBooks(ctx context.Context, repo repository.RepositoryInterface, defaultCover string) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list books: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	inserted := 0
	for _, f := range seedFields(defaultCover) {
		if _, err := repo.Create(ctx, f); err != nil {
			return inserted, fmt.Errorf("insert %q: %w", f.Title, err)
		}
		inserted++
	}
	return inserted, nil
}

func newSeedCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample books into an empty catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			defaultCover := os.Getenv("DEFAULT_COVER_IMG")
			if defaultCover == "" {
				defaultCover = "/static/img/default-cover.png"
			}

			// truncate + insert chung một transaction, lỗi giữa chừng thì catalog giữ nguyên
			n, err := database.WithTransactionResult(ctx, db.Pool, func(tx pgx.Tx) (int, error) {
				if reset {
					if _, err := tx.Exec(ctx, `TRUNCATE book RESTART IDENTITY`); err != nil {
						return 0, fmt.Errorf("truncate book: %w", err)
					}
				}
				return seedBooks(ctx, repository.NewPostgresRepository(tx), defaultCover)
			})
			if err != nil {
				return err
			}
			if n == 0 {
				logger.Warn("catalog is not empty, nothing seeded (use --reset)", map[string]interface{}{})
				return nil
			}

			logger.Info("seeded books", map[string]interface{}{"count": n})
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Truncate the book table before seeding")
	return cmd
}
