package models

// Coordinate represents a single named geographical point stored in a
// coordinate table.
type Coordinate struct {
	ID        string  `json:"id"        dynamodbav:"id"`        // ID is the unique key of the record within its table.
	Title     string  `json:"title"     dynamodbav:"title"`     // Title is a human-readable label for the point.
	Latitude  float64 `json:"latitude"  dynamodbav:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `json:"longitude" dynamodbav:"longitude"` // Longitude of the geographical point.
}
