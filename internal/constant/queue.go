package constant

import "time"

const (
	DispatchStreamName = "mediawatch-complaints"
	DispatchSubjects   = "COMPLAINT.*"
	DispatchSubject    = "COMPLAINT.DISPATCH"
	DispatchQueueGroup = "mediawatch-dispatch"

	DispatchDedupWindow     = time.Minute * 10
	DispatchAckWait         = time.Second * 30
	DispatchInProgressEvery = time.Second * 10
	DispatchPublishTimeout  = time.Second * 2
)
