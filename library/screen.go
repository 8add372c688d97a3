package library

// Screen composes the independent panels of the client. The panels never
// reach into each other.
type Screen struct {
	Books  *BookPanel
	Users  *UserPanel
	Borrow *LoanForm
	Return *LoanForm
	Stats  *StatsPanel
}

// Snapshot is everything the renderer needs for one frame.
type Snapshot struct {
	Books  BookState
	Users  UserState
	Borrow LoanState
	Return LoanState
	Stats  StatsState
}

func NewScreen(backend Backend, notify Notifier) *Screen {
	return &Screen{
		Books:  NewBookPanel(backend, notify),
		Users:  NewUserPanel(backend, notify),
		Borrow: NewBorrowForm(backend),
		Return: NewReturnForm(backend),
		Stats:  NewStatsPanel(backend),
	}
}

func (s *Screen) Snapshot() Snapshot {
	return Snapshot{
		Books:  s.Books.State(),
		Users:  s.Users.State(),
		Borrow: s.Borrow.State(),
		Return: s.Return.State(),
		Stats:  s.Stats.State(),
	}
}
