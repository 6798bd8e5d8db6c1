/*
Package queue implements azfs.Backend for Azure Queue Storage using the azqueue SDK.

Importing the package registers it for azfs.KindQueue.  A queue URL has exactly one path segment, the queue name,
and the file operations map onto queue operations:

	List        peek at up to 32 messages (Name is the message text, FullPath the message id)
	Read        receive one message and delete it
	Write       enqueue a message, creating the queue on first use
	Delete      delete the queue
	Properties  approximate message count, reported as Size
*/
package queue
