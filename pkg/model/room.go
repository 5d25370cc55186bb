package model

// Room is a bookable discussion room. Rooms are seeded out of band (see
// cmd/migrate) and immutable at runtime; everything the API reports about a
// room's occupancy is derived from its booking records, never stored here.
type Room struct {
	ID   string `json:"id" bson:"_id" validate:"required"`
	Name string `json:"name" bson:"name" validate:"required,min=1,max=100"`
}
