package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"room_id",
			"booked_by",
			"start_hour",
			"end_hour",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"room_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"booked_by": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"start_hour": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  23,
			},

			"end_hour": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  24,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"booked",
					"canceled",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
