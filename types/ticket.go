package types

// TicketWebhookRequest is the ticket payload the automation engine forwards
// from the ITSM. Field names follow the ITSM's own naming.
type TicketWebhookRequest struct {
	ID                int    `json:"id"`
	DateCreation      string `json:"date_creation"`
	UserRecipientID   *int   `json:"user_recipient_id"`
	UserRecipientName string `json:"user_recipient_name"`
	Location          string `json:"location"`
	Name              string `json:"name"`
	Content           string `json:"content"`
	CategoryName      string `json:"category_name"`
	EntityID          *int   `json:"entity_id"`
	EntityName        string `json:"entity_name"`
	TeamAssignedID    *int   `json:"team_assigned_id"`
	TeamAssignedName  string `json:"team_assigned_name"`
}

// ClassifyTicketRequest asks for a classification of the given ticket.
type ClassifyTicketRequest struct {
	TicketID int    `json:"glpi_ticket_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}
