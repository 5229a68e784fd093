package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"log"

	"chirp/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed personas.yaml
var personasYAML []byte

// Persona is a fixed demo account defined in personas.yaml.
type Persona struct {
	Username string   `yaml:"username"`
	Email    string   `yaml:"email"`
	Bio      string   `yaml:"bio"`
	Location string   `yaml:"location"`
	Messages []string `yaml:"messages"`
}

type personaFile struct {
	Personas []Persona `yaml:"personas"`
}

// LoadPersonas parses the embedded persona fixtures.
func LoadPersonas() ([]Persona, error) {
	var file personaFile
	if err := yaml.Unmarshal(personasYAML, &file); err != nil {
		return nil, fmt.Errorf("parse personas.yaml: %w", err)
	}
	return file.Personas, nil
}

// Personas creates the fixed demo accounts and their messages. Accounts that
// already exist are reused, so re-running the seeder is safe.
func Personas(db *gorm.DB, opts Options) ([]*models.User, error) {
	personas, err := LoadPersonas()
	if err != nil {
		return nil, err
	}

	password := defaultSeedPassword
	if !opts.SkipBcrypt {
		hashed, herr := bcrypt.GenerateFromPassword([]byte(defaultSeedPassword), bcrypt.DefaultCost)
		if herr != nil {
			return nil, herr
		}
		password = string(hashed)
	}

	users := make([]*models.User, 0, len(personas))
	for _, p := range personas {
		var user models.User
		err := db.Where("username = ?", p.Username).First(&user).Error
		switch {
		case err == nil:
			users = append(users, &user)
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}

		user = models.User{
			Username: p.Username,
			Email:    p.Email,
			Password: password,
			Bio:      p.Bio,
			Location: p.Location,
			ImageURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", p.Username),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create persona %s: %w", p.Username, err)
		}

		for _, text := range p.Messages {
			if err := db.Create(&models.Message{Text: text, UserID: user.ID}).Error; err != nil {
				log.Printf("Failed to create persona message for %s: %v", p.Username, err)
			}
		}
		users = append(users, &user)
	}

	return users, nil
}
