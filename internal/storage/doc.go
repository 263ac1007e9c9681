// Package storage provides the AWS-backed persistence for the engine:
// campaign configurations in S3, person eligibility data and audit records
// in DynamoDB, and an optional Redis read-through cache in front of the
// campaign bucket.
package storage
