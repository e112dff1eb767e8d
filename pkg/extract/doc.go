// Package extract recovers a structured JSON document from a model's
// free-form text reply.
//
// Models do not always follow formatting instructions: the reply may be
// wrapped in markdown code fences or surrounded by prose. Extraction runs
// a small ordered chain of strategies, each independent, short-circuiting
// on the first one that yields a parseable document. If no strategy
// succeeds, or the document lacks the required "ideas" array, extraction
// fails and no partial result is produced.
package extract
