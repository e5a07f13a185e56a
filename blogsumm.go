// Package blogsumm provides a resilient article summarization pipeline.
// It fetches a blog post, extracts the readable text, summarizes it with a
// generative model (falling back to extractive summarization), translates
// the summary and persists the result together with reading metrics.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package blogsumm
