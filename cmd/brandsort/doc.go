// Command brandsort organizes photo folders into Brand/Product/Category
// trees. It runs the pipeline in-process (organize), hosts the HTTP job API
// (serve), and talks to a running daemon (submit, status, logs).
package main
