package services

import (
	"encoding/json"
	"log"

	"gospelcms/models"
)

// EventService fans content events out to connected admin sockets so the
// admin panel can refresh without polling. Delivery is best-effort: slow
// clients are dropped.
type EventService struct {
	hub *models.Hub
}

func NewEventService() *EventService {
	service := &EventService{hub: models.NewHub()}

	go service.Run()

	return service
}

func (e *EventService) Hub() *models.Hub {
	return e.hub
}

func (e *EventService) Run() {
	for {
		select {
		case client := <-e.hub.Register:
			e.hub.Clients[client] = true
			log.Printf("Event client registered for user %s", client.UserID)

		case client := <-e.hub.Unregister:
			if _, ok := e.hub.Clients[client]; ok {
				delete(e.hub.Clients, client)
				close(client.Send)
				log.Printf("Event client unregistered for user %s", client.UserID)
			}

		case message := <-e.hub.Broadcast:
			for client := range e.hub.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(e.hub.Clients, client)
				}
			}
		}
	}
}

// PublishPost broadcasts a content event carrying a trimmed post summary.
func (e *EventService) PublishPost(eventType string, post *models.Post) {
	event := models.Event{
		Type: eventType,
		Data: map[string]interface{}{
			"id":     post.ID,
			"title":  post.Title,
			"slug":   post.Slug,
			"status": post.Status,
		},
	}

	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}

	e.hub.Broadcast <- message
}

// PublishPostDeleted broadcasts a deletion, where only the id survives.
func (e *EventService) PublishPostDeleted(id string) {
	event := models.Event{
		Type: models.EventPostDeleted,
		Data: map[string]interface{}{"id": id},
	}

	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling delete event: %v", err)
		return
	}

	e.hub.Broadcast <- message
}
