package library

import "context"

// BookState is a rendered snapshot of the book panel.
type BookState = EntityState[Book, BookDraft, NewBook]

// BookPanel owns the book lookup, create and edit forms.
type BookPanel struct {
	*panel[Book, BookDraft, NewBook]
}

func NewBookPanel(backend Backend, notify Notifier) *BookPanel {
	ops := panelOps[Book, BookDraft, NewBook]{
		get: func(ctx context.Context, id string) (*Book, error) {
			b, err := backend.GetBook(ctx, id)
			if err != nil || b == nil {
				return nil, err
			}
			book := *b
			book.ID = id
			return &book, nil
		},
		create: backend.CreateBook,
		update: backend.UpdateBook,
		remove: backend.DeleteBook,
		seed: func(b Book) BookDraft {
			return BookDraft{Title: b.Title, Author: b.Author, Amount: b.Amount}
		},
	}
	text := panelText{
		notFound:     "Book not found",
		createFailed: "Failed to create book",
		updateFailed: "Failed to update book",
		deleteFailed: "Failed to delete book",
		created:      "Book created!",
		deleted:      "Book deleted!",
	}
	return &BookPanel{newPanel("book", ops, text, notify)}
}
