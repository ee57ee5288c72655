package model

type JobVector struct {
	JobID        string    `json:"job_id"`
	BuildVersion string    `json:"build_version"`
	Embedding    []float32 `json:"embedding"`
	Position     int       `json:"position"`
	Ctime        int64     `json:"ctime"`
}

type MatchIndexMeta struct {
	BuildVersion string `json:"build_version"`
	Vocabulary   string `json:"vocabulary"`
	Locations    string `json:"locations"`
	JobCount     int    `json:"job_count"`
	Dimension    int    `json:"dimension"`
	Ctime        int64  `json:"ctime"`
}
