package repository

import (
	"fmt"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/deppfellow/contacts-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Contacts ContactRepository
}

// NewRepositories builds the repositories for the storage driver configured
// on s. The matching connection (s.Mongo or s.DB) must already be open.
func NewRepositories(s *server.Server) (*Repositories, error) {
	var contacts ContactRepository

	switch s.Config.Storage.Driver {
	case config.DriverMongo, "":
		if s.Mongo == nil {
			return nil, fmt.Errorf("mongo storage selected but no mongo connection is open")
		}
		contacts = NewMongoContactRepository(s.Mongo.Collection(s.Config.Mongo.Collection))
	case config.DriverPostgres:
		if s.DB == nil {
			return nil, fmt.Errorf("postgres storage selected but no database pool is open")
		}
		contacts = NewPostgresContactRepository(s.DB.Pool)
	case config.DriverMemory:
		contacts = NewMemoryContactRepository()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", s.Config.Storage.Driver)
	}

	return &Repositories{Contacts: contacts}, nil
}
