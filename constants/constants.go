package constants

import "os"

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetOutDir() string {
	return getenv("OUT_DIR", "./out")
}

func GetScoreDir() string {
	return getenv("SCORE_DIR", "./scores")
}

func GetPort() string {
	return getenv("PORT", "3000")
}

// GetDynamoEndpoint is empty unless a local DynamoDB is used.
func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMO_ENDPOINT")
}

func GetDynamoRegion() string {
	return getenv("DYNAMO_REGION", "us-east-1")
}

func GetDynamoTable() string {
	return getenv("DYNAMO_TABLE", "engraver-scores")
}

func GetLogLevel() string {
	return getenv("LOG_LEVEL", "info")
}

func GetConfigPath() string {
	return getenv("ENGRAVER_CONFIG", "engraver.yaml")
}

// MaxScoreBytes bounds score documents accepted over HTTP.
const MaxScoreBytes = 1 << 20
