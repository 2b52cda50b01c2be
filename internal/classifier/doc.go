// Package classifier turns a feature vector into a phishing probability
// and a risk level. A remote model endpoint can be used when configured;
// the weighted rule-based classifier is always available and serves as
// the fallback when the remote call fails.
package classifier
