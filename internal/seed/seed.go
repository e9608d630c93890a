// Package seed provides helpers to create demo data for the application
// database. Intended for development only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pinboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder populates the database with generated users, boards, comments,
// likes and the notifications those events would have produced.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Deletion order follows the foreign
// keys so it also works on databases without cascades applied.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.Notification{},
		&models.CommentLike{},
		&models.BoardLike{},
		&models.Comment{},
		&models.Board{},
		&models.Session{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", table, err)
		}
	}
	log.Println("Database cleared")
	return nil
}

// Run seeds numUsers users with numBoards boards between them, plus
// comments, likes and the matching notification entries. Every user gets
// the password "password".
func (s *Seeder) Run(numUsers, numBoards int) error {
	users, err := s.seedUsers(numUsers)
	if err != nil {
		return err
	}
	boards, err := s.seedBoards(users, numBoards)
	if err != nil {
		return err
	}
	comments, err := s.seedComments(users, boards)
	if err != nil {
		return err
	}
	if err := s.seedLikes(users, boards, comments); err != nil {
		return err
	}
	log.Printf("Seeded %d users, %d boards, %d comments", len(users), len(boards), len(comments))
	return nil
}

func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	// One shared hash: hashing is the slow part and the password is the
	// same for every demo account.
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Name:      fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Password:  string(hash),
			CreatedAt: s.pastTime(120),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedBoards(users []*models.User, n int) ([]*models.Board, error) {
	boards := make([]*models.Board, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		board := &models.Board{
			Title:     gofakeit.Sentence(s.rng.Intn(6) + 3),
			Content:   gofakeit.Paragraph(1, 4, 8, "\n"),
			AuthorID:  &author.ID,
			ViewCount: uint(s.rng.Intn(500)),
			CreatedAt: s.pastTime(90),
		}
		if err := s.db.Create(board).Error; err != nil {
			return nil, fmt.Errorf("creating board: %w", err)
		}
		boards = append(boards, board)
	}
	return boards, nil
}

func (s *Seeder) seedComments(users []*models.User, boards []*models.Board) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, board := range boards {
		for i := 0; i < s.rng.Intn(6); i++ {
			author := users[s.rng.Intn(len(users))]
			comment := &models.Comment{
				BoardID:   board.ID,
				AuthorID:  &author.ID,
				Content:   gofakeit.Sentence(s.rng.Intn(12) + 3),
				CreatedAt: s.pastTime(60),
			}
			if err := s.db.Create(comment).Error; err != nil {
				return nil, fmt.Errorf("creating comment: %w", err)
			}
			comments = append(comments, comment)

			if err := s.notify(board.AuthorID, author.ID,
				models.NotificationBoardComment, &board.ID, &comment.ID); err != nil {
				return nil, err
			}
		}
	}
	return comments, nil
}

func (s *Seeder) seedLikes(users []*models.User, boards []*models.Board, comments []*models.Comment) error {
	for _, board := range boards {
		for _, user := range s.sample(users, s.rng.Intn(len(users)/2+1)) {
			like := &models.BoardLike{BoardID: board.ID, UserID: user.ID}
			if err := s.db.Create(like).Error; err != nil {
				return fmt.Errorf("creating board like: %w", err)
			}
			if err := s.notify(board.AuthorID, user.ID,
				models.NotificationBoardLike, &board.ID, nil); err != nil {
				return err
			}
		}
	}
	for _, comment := range comments {
		for _, user := range s.sample(users, s.rng.Intn(4)) {
			like := &models.CommentLike{CommentID: comment.ID, UserID: user.ID}
			if err := s.db.Create(like).Error; err != nil {
				return fmt.Errorf("creating comment like: %w", err)
			}
			if err := s.notify(comment.AuthorID, user.ID,
				models.NotificationCommentLike, &comment.BoardID, &comment.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) notify(recipient *uint, actorID uint, typ models.NotificationType, boardID, commentID *uint) error {
	if recipient == nil {
		return nil
	}
	notification := &models.Notification{
		UserID:    *recipient,
		Type:      typ,
		BoardID:   boardID,
		CommentID: commentID,
		ActorID:   actorID,
		Read:      s.rng.Intn(3) == 0,
	}
	if err := s.db.Create(notification).Error; err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}
	return nil
}

// pastTime returns a random timestamp up to maxDays in the past.
func (s *Seeder) pastTime(maxDays int) time.Time {
	return time.Now().
		Add(-time.Duration(s.rng.Intn(maxDays*24)) * time.Hour).
		Add(-time.Duration(s.rng.Intn(60)) * time.Minute)
}

// sample returns up to n distinct users.
func (s *Seeder) sample(users []*models.User, n int) []*models.User {
	idx := s.rng.Perm(len(users))
	if n > len(users) {
		n = len(users)
	}
	picked := make([]*models.User, 0, n)
	for _, i := range idx[:n] {
		picked = append(picked, users[i])
	}
	return picked
}
