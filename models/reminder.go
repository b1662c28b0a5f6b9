package models

// ReminderPayload is the task payload for an installment due-date
// reminder delivered by the async worker.
type ReminderPayload struct {
	BookingID         string `json:"bookingId"`
	UserID            string `json:"userId"`
	InstallmentNumber int    `json:"installmentNumber"`
	DueDate           string `json:"dueDate"`
	Title             string `json:"title"`
	Body              string `json:"body"`
}
