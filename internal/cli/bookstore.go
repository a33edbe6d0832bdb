package cli

import (
	"errors"

	"github.com/quillfort/trak/internal/sqlite"
	"github.com/quillfort/trak/pkg/types"
)

// bookstore binds the inventory menu handlers to a session and an attached
// backend.
type bookstore struct {
	s     *Session
	store *sqlite.Backend
}

// RunBookstore drives the bookstore program until the user exits.
func RunBookstore(s *Session, store *sqlite.Backend) error {
	b := &bookstore{s: s, store: store}

	menu := Menu{
		Title:     "--- Bookstore Menu ---",
		ExitLabel: "Exit",
		Items: []MenuItem{
			{Label: "Enter book", Run: b.enterBook},
			{Label: "Update book", Run: b.updateBook},
			{Label: "Delete book", Run: b.deleteBook},
			{Label: "Search books", Run: b.searchBooks},
		},
	}
	if err := menu.Run(s); err != nil {
		return err
	}
	s.Println("Exiting Application.")
	return nil
}

func (b *bookstore) enterBook() error {
	b.s.Title("--- Enter New Book ---")
	id, err := b.s.PromptID("Enter ID: ")
	if err != nil {
		return err
	}
	title, err := b.s.ReadLine("Enter Title: ")
	if err != nil {
		return err
	}
	author, err := b.s.ReadLine("Enter Author: ")
	if err != nil {
		return err
	}
	quantity, err := b.s.PromptInt("Enter Quantity: ")
	if err != nil {
		return err
	}

	book := types.Book{ID: id, Title: title, Author: author, Quantity: quantity}
	if err := b.store.Books().Add(&book); err != nil {
		if errors.Is(err, types.ErrDuplicateName) {
			b.s.Failure("A book with this ID or Title already exists.")
			return nil
		}
		return err
	}
	b.s.Success("Book '%s' (ID: %d) successfully added.", book.Title, book.ID)
	return nil
}

func (b *bookstore) updateBook() error {
	b.s.Title("--- Update Book ---")
	originalID, err := b.s.PromptID("Enter Original Book ID: ")
	if err != nil {
		return err
	}
	if _, err := b.store.Books().Get(originalID); err != nil {
		return err
	}

	b.s.Println("Enter the revised details:")
	revisedID, err := b.s.PromptID("Enter Revised ID: ")
	if err != nil {
		return err
	}
	title, err := b.s.ReadLine("Enter Revised Title: ")
	if err != nil {
		return err
	}
	author, err := b.s.ReadLine("Enter Revised Author: ")
	if err != nil {
		return err
	}
	quantity, err := b.s.PromptInt("Enter Revised Quantity: ")
	if err != nil {
		return err
	}

	patch := types.BookPatch{ID: &revisedID, Title: &title, Author: &author, Quantity: &quantity}
	if _, err := b.store.Books().Update(originalID, patch); err != nil {
		if errors.Is(err, types.ErrDuplicateName) {
			b.s.Failure("The revised ID or Title already exists for another book.")
			return nil
		}
		return err
	}
	b.s.Success("Book with ID %d successfully updated.", originalID)
	return nil
}

func (b *bookstore) deleteBook() error {
	b.s.Title("--- Delete Book ---")
	id, err := b.s.PromptID("Enter Book ID to delete: ")
	if err != nil {
		return err
	}
	book, err := b.store.Books().Get(id)
	if err != nil {
		return err
	}

	ok, err := b.s.Confirm("Type yes to delete '" + book.Title + "': ")
	if err != nil {
		return err
	}
	if !ok {
		b.s.Println("Deletion cancelled.")
		return nil
	}

	if err := b.store.Books().Delete(id); err != nil {
		return err
	}
	b.s.Success("Book with ID %d successfully deleted.", id)
	return nil
}

func (b *bookstore) searchBooks() error {
	b.s.Title("--- Search Books ---")
	return Menu{
		Title:     "Search by:",
		ExitLabel: "Cancel search",
		Items: []MenuItem{
			{Label: "ID", Run: b.searchByID},
			{Label: "Title", Run: b.searchByTitle},
			{Label: "Author", Run: b.searchByAuthor},
		},
	}.Run(b.s)
}

func (b *bookstore) searchByID() error {
	id, err := b.s.PromptID("Enter ID: ")
	if err != nil {
		return err
	}
	book, err := b.store.Books().Get(id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			b.s.Println("No books found matching the search criteria.")
			return nil
		}
		return err
	}
	b.printResults([]types.Book{*book})
	return nil
}

func (b *bookstore) searchByTitle() error {
	term, err := b.s.ReadLine("Enter Title (Inc. Partial Matches): ")
	if err != nil {
		return err
	}
	books, err := b.store.Books().SearchTitle(term)
	if err != nil {
		return err
	}
	b.printResults(books)
	return nil
}

func (b *bookstore) searchByAuthor() error {
	term, err := b.s.ReadLine("Enter Author (Inc. Partial Matches): ")
	if err != nil {
		return err
	}
	books, err := b.store.Books().SearchAuthor(term)
	if err != nil {
		return err
	}
	b.printResults(books)
	return nil
}

func (b *bookstore) printResults(books []types.Book) {
	if len(books) == 0 {
		b.s.Println("No books found matching the search criteria.")
		return
	}
	b.s.Title("--- Search Results ---")
	for _, book := range books {
		b.s.Printf("ID: %d\n", book.ID)
		b.s.Printf("Title: %s\n", book.Title)
		b.s.Printf("Author: %s\n", book.Author)
		b.s.Printf("Quantity: %d\n", book.Quantity)
		b.s.Println("--------------------")
	}
}
