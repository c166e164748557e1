package store

import (
	"time"

	"github.com/google/uuid"

	"zenflowAPI/internal/routine"
)

// seedRoutines loads the built-in yoga catalog. Called once from New,
// before the store is shared, so no locking here.
func (s *Store) seedRoutines() {
	seeded := []*routine.Routine{
		{
			Name:            "Morning Sun Salutation",
			Description:     "A flowing warm-up sequence to wake up the whole body.",
			Category:        "morning",
			Difficulty:      routine.DifficultyBeginner,
			DurationMinutes: 15,
			Poses: []routine.Pose{
				{Name: "Mountain Pose", SanskritName: "Tadasana", DurationSeconds: 30},
				{Name: "Upward Salute", SanskritName: "Urdhva Hastasana", DurationSeconds: 30},
				{Name: "Standing Forward Bend", SanskritName: "Uttanasana", DurationSeconds: 45},
				{Name: "Downward-Facing Dog", SanskritName: "Adho Mukha Svanasana", DurationSeconds: 60},
				{Name: "Cobra", SanskritName: "Bhujangasana", DurationSeconds: 45},
			},
		},
		{
			Name:            "Evening Wind Down",
			Description:     "Gentle stretches and long holds to release the day's tension.",
			Category:        "evening",
			Difficulty:      routine.DifficultyBeginner,
			DurationMinutes: 20,
			Poses: []routine.Pose{
				{Name: "Child's Pose", SanskritName: "Balasana", DurationSeconds: 90},
				{Name: "Cat-Cow", SanskritName: "Marjaryasana-Bitilasana", DurationSeconds: 60},
				{Name: "Seated Forward Bend", SanskritName: "Paschimottanasana", DurationSeconds: 90},
				{Name: "Legs Up the Wall", SanskritName: "Viparita Karani", DurationSeconds: 180},
				{Name: "Corpse Pose", SanskritName: "Savasana", DurationSeconds: 240},
			},
		},
		{
			Name:            "Core Power Flow",
			Description:     "A faster vinyasa sequence focused on core strength and balance.",
			Category:        "strength",
			Difficulty:      routine.DifficultyIntermediate,
			DurationMinutes: 30,
			Poses: []routine.Pose{
				{Name: "Plank", SanskritName: "Phalakasana", DurationSeconds: 60},
				{Name: "Side Plank", SanskritName: "Vasisthasana", DurationSeconds: 45},
				{Name: "Boat Pose", SanskritName: "Navasana", DurationSeconds: 45},
				{Name: "Warrior III", SanskritName: "Virabhadrasana III", DurationSeconds: 45},
				{Name: "Chair Pose", SanskritName: "Utkatasana", DurationSeconds: 60},
			},
		},
		{
			Name:            "Deep Hip Opener",
			Description:     "Long-hold yin practice for hips and lower back.",
			Category:        "flexibility",
			Difficulty:      routine.DifficultyIntermediate,
			DurationMinutes: 40,
			Poses: []routine.Pose{
				{Name: "Pigeon Pose", SanskritName: "Eka Pada Rajakapotasana", DurationSeconds: 180},
				{Name: "Lizard Pose", SanskritName: "Utthan Pristhasana", DurationSeconds: 120},
				{Name: "Frog Pose", SanskritName: "Mandukasana", DurationSeconds: 120},
				{Name: "Happy Baby", SanskritName: "Ananda Balasana", DurationSeconds: 90},
			},
		},
		{
			Name:            "Inversions and Arm Balances",
			Description:     "Advanced session building toward headstand and crow variations.",
			Category:        "strength",
			Difficulty:      routine.DifficultyAdvanced,
			DurationMinutes: 45,
			Poses: []routine.Pose{
				{Name: "Dolphin Pose", SanskritName: "Ardha Pincha Mayurasana", DurationSeconds: 90},
				{Name: "Crow Pose", SanskritName: "Bakasana", DurationSeconds: 60},
				{Name: "Supported Headstand", SanskritName: "Salamba Sirsasana", DurationSeconds: 120},
				{Name: "Forearm Stand", SanskritName: "Pincha Mayurasana", DurationSeconds: 60},
			},
		},
	}

	now := time.Now()
	for _, r := range seeded {
		r.ID = uuid.New().String()
		r.CreatedAt = now
		s.routines[r.ID] = r
	}
}
