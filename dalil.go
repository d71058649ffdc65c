// Package dalil provides a bilingual (English/Arabic) search and ingestion
// core for a government-services catalog. It indexes structured service
// records for full-text search with synonym expansion, and orchestrates
// content acquisition with TTL caching and bounded concurrency.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/) or their
// function when they have none (query/, index/, catalog/).
package dalil
