package cmd

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	IntakeBaseURL      string
	NotifyRegion       string
	NotifyFromEmail    string
	NotifyOpsEmail     string
	RiderName          string
	CapacityLiters     string
	KegSizeLiters      string
	BatchTimeWindowMin string
	RescheduleDelayMin string
	DelayThresholdMin  string
}
