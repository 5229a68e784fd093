package seed

import (
	"fmt"
	"log"

	"chirp/internal/models"

	"gorm.io/gorm"
)

const defaultSeedPassword = "password123"

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumMessages int
	ShouldClean bool
	// SkipBcrypt stores the plaintext password instead of hashing it.
	// Seeded accounts cannot log in, but large seeds run much faster.
	SkipBcrypt bool
	// MaxDays controls how far back message timestamps are spread.
	MaxDays int
}

// Seed populates the database with demo data: persona accounts, generated
// users, a follow mesh, messages, and likes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d messages...", opts.NumUsers, opts.NumMessages)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users, err := Personas(db, opts)
	if err != nil {
		return fmt.Errorf("failed to seed personas: %w", err)
	}
	log.Printf("%d persona accounts available", len(users))

	generated, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	users = append(users, generated...)
	log.Printf("%d users total", len(users))

	if err := createFollowMesh(factory, users); err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}

	messages, err := createMessages(factory, users, opts.NumMessages)
	if err != nil {
		return fmt.Errorf("failed to create messages: %w", err)
	}
	log.Printf("%d messages created", len(messages))

	if err := createLikes(factory, users, messages); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE likes, messages, follows, blocks, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create seed user: %v", err)
			continue
		}
		users = append(users, user)
		logProgress("users", i)
	}
	return users, nil
}

// createFollowMesh gives every user a handful of follows so feeds and
// follower lists have content. Self-follows are skipped.
func createFollowMesh(factory *Factory, users []*models.User) error {
	if len(users) < 2 {
		return nil
	}

	for _, follower := range users {
		numFollows := 2 + factory.rng.Intn(6)
		seen := map[uint]struct{}{follower.ID: {}}
		for j := 0; j < numFollows; j++ {
			target := users[factory.rng.Intn(len(users))]
			if _, dup := seen[target.ID]; dup {
				continue
			}
			seen[target.ID] = struct{}{}
			if err := factory.CreateFollow(follower, target); err != nil {
				return err
			}
		}
	}
	return nil
}

func createMessages(factory *Factory, users []*models.User, count int) ([]*models.Message, error) {
	if len(users) == 0 {
		return nil, nil
	}

	const batchSize = 200
	messages := make([]*models.Message, 0, count)
	batch := make([]*models.Message, 0, batchSize)

	for i := 0; i < count; i++ {
		user := users[factory.rng.Intn(len(users))]
		batch = append(batch, factory.BuildMessage(user))

		if len(batch) == batchSize || i == count-1 {
			if err := factory.CreateMessagesBatch(batch); err != nil {
				return nil, err
			}
			messages = append(messages, batch...)
			batch = batch[:0]
		}
		logProgress("messages", i)
	}
	return messages, nil
}

// createLikes sprinkles likes over the messages, skipping authors so the
// self-like rule holds for seeded data too.
func createLikes(factory *Factory, users []*models.User, messages []*models.Message) error {
	if len(users) < 2 || len(messages) == 0 {
		return nil
	}

	for _, message := range messages {
		numLikes := factory.rng.Intn(4)
		seen := map[uint]struct{}{message.UserID: {}}
		for j := 0; j < numLikes; j++ {
			user := users[factory.rng.Intn(len(users))]
			if _, dup := seen[user.ID]; dup {
				continue
			}
			seen[user.ID] = struct{}{}
			if err := factory.CreateLike(user, message); err != nil {
				return err
			}
		}
	}
	return nil
}
