package constants

const US_EAST_1 = "us-east-1"

// Cost Explorer SERVICE dimension values the analyzers key on.
const (
	SERVICE_EC2      = "Amazon Elastic Compute Cloud - Compute"
	SERVICE_RDS      = "Amazon Relational Database Service"
	SERVICE_S3       = "Amazon Simple Storage Service"
	SERVICE_EBS      = "Amazon Elastic Block Store"
	SERVICE_DYNAMODB = "Amazon DynamoDB"
)

const (
	PROJECT_TAG_KEY      = "Project"
	ANALYSIS_WINDOW_DAYS = 30
	DYNAMODB_WINDOW_DAYS = 14
	NEXT_ANALYSIS_DAYS   = 7
)

// Default spend thresholds in USD over the analysis window.
const (
	COMPUTE_THRESHOLD        = 100
	DATABASE_THRESHOLD       = 50
	OBJECT_STORAGE_THRESHOLD = 20
	BLOCK_STORAGE_THRESHOLD  = 30
	DYNAMODB_THRESHOLD       = 25
)
