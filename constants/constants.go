package constants

import (
	"os"
	"time"
)

func GetOutDir() string {
	path := os.Getenv("TIMELINE_OUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetScoreDir() string {
	path := os.Getenv("SCORE_PATH")
	if path != "" {
		return path
	}

	panic("SCORE_PATH environment variable is not set!")
}

func GetDynamoEndpoint() string {
	endpoint := os.Getenv("DYNAMODB_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

func GetDynamoTable() string {
	table := os.Getenv("DYNAMODB_TABLE")
	if table != "" {
		return table
	}
	return "scoretime-timelines"
}

func GetRegion() string {
	region := os.Getenv("AWS_REGION")
	if region != "" {
		return region
	}
	return "localhost"
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port != "" {
		return port
	}
	return "8080"
}

// used until a score says otherwise
const DefaultDivisions = 1
const DefaultTempo = 60.0

// ticks per quarter note in exported midi files
const MidiResolution = 960

// MusicXML dynamics are a percentage of this velocity
const ForteVelocity = 90

const DefaultVelocity = 80

const ReloadDebounce = 250 * time.Millisecond
const ReloadPollInterval = time.Second

// DynamoDB BatchGetItem limit we allow per call
const MaxBatchGet = 10
