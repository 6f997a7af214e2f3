package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/hibiken/asynq"
)

// TaskContactCreated is the Asynq task type emitted after a contact is stored.
const TaskContactCreated = "contact:created"

// ContactCreatedPayload is the JSON payload stored in Redis.
type ContactCreatedPayload struct {
	ContactID string `json:"contact_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// NewContactCreatedTask builds the task for contact. It is retried up to three
// times on the low queue and killed after 30 seconds.
func NewContactCreatedTask(contact *model.Contact) (*asynq.Task, error) {
	payload, err := json.Marshal(ContactCreatedPayload{
		ContactID: contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Phone:     contact.Phone,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskContactCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
