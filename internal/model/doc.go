// Package model defines the core data types shared across phishscan:
// the feature vector assembled from the signal extractors, the analysis
// result returned to callers, and the discrete risk level.
package model
