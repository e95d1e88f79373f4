package model

// Point is a 2-D canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a repository positioned on the canvas.
type Node struct {
	Position   Point      `json:"position"`
	Radius     float64    `json:"radius"`
	Color      string     `json:"color"`
	Language   string     `json:"language"`
	Repository Repository `json:"repository"`
}

// Cluster is the anchor of one language group.
type Cluster struct {
	Language string  `json:"language"`
	Angle    float64 `json:"angle"`
	Anchor   Point   `json:"anchor"`
	Label    Point   `json:"label"`
	Color    string  `json:"color"`
	Size     int     `json:"size"`
}

// Graph is the full clustered layout of a repository list.
type Graph struct {
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Center   Point     `json:"center"`
	Clusters []Cluster `json:"clusters"`
	Nodes    []Node    `json:"nodes"`
}
