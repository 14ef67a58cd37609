// Package features turns a submitted URL into the fixed-length vector the
// classifier was trained on.
package features

import (
	"context"
	"fmt"
)

// Len is the number of features in every Vector.
const Len = 30

// Feature values. Every feature is scored on the same three-point scale.
const (
	Phishy     = -1.0
	Suspicious = 0.0
	Legit      = 1.0
)

// Names lists the features in vector order.
var Names = [Len]string{
	"UsingIP",
	"LongURL",
	"ShortURL",
	"Symbol@",
	"Redirecting//",
	"PrefixSuffix-",
	"SubDomains",
	"HTTPS",
	"DomainRegLen",
	"Favicon",
	"NonStdPort",
	"HTTPSDomainURL",
	"RequestURL",
	"AnchorURL",
	"LinksInScriptTags",
	"ServerFormHandler",
	"InfoEmail",
	"AbnormalURL",
	"WebsiteForwarding",
	"StatusBarCust",
	"DisableRightClick",
	"UsingPopupWindow",
	"IframeRedirection",
	"AgeofDomain",
	"DNSRecording",
	"WebsiteTraffic",
	"PageRank",
	"GoogleIndex",
	"LinksPointingToPage",
	"StatsReport",
}

// Vector is an ordered feature encoding of one URL.
type Vector []float64

// Named pairs every value with its feature name.
func (v Vector) Named() map[string]float64 {
	out := make(map[string]float64, len(v))
	for i, val := range v {
		if i < Len {
			out[Names[i]] = val
		}
	}
	return out
}

// CheckLen reports a vector whose length differs from Len.
func (v Vector) CheckLen() error {
	if len(v) != Len {
		return fmt.Errorf("feature vector has %d values, want %d", len(v), Len)
	}
	return nil
}

// Extractor produces the feature vector for a URL.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (Vector, error)
}
