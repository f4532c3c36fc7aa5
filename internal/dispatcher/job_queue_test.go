package dispatcher

import "testing"

func TestJobQueueEnqueueDequeue(t *testing.T) {
	q := NewJobQueue(2)

	if !q.Enqueue(Job{Type: JobTypeBan, GuildID: "g1", TargetID: "u1"}) {
		t.Fatal("Enqueue into empty queue should succeed")
	}
	if !q.Enqueue(Job{Type: JobTypeKick, GuildID: "g1", TargetID: "u2"}) {
		t.Fatal("Enqueue within capacity should succeed")
	}
	// Full: the job is dropped rather than blocking the event path.
	if q.Enqueue(Job{Type: JobTypeUnban, GuildID: "g1", TargetID: "u3"}) {
		t.Fatal("Enqueue into full queue should report false")
	}

	job, ok := q.Dequeue()
	if !ok || job.Type != JobTypeBan || job.TargetID != "u1" {
		t.Fatalf("Dequeue = %+v, %v", job, ok)
	}
	job, ok = q.Dequeue()
	if !ok || job.Type != JobTypeKick {
		t.Fatalf("Dequeue = %+v, %v", job, ok)
	}
}

func TestJobQueueClose(t *testing.T) {
	q := NewJobQueue(2)
	q.Enqueue(Job{Type: JobTypeVanityRestore, GuildID: "g1", Code: "old"})
	q.Close()

	// Buffered jobs drain before the closed signal.
	job, ok := q.Dequeue()
	if !ok || job.Code != "old" {
		t.Fatalf("Dequeue after Close = %+v, %v", job, ok)
	}
	if _, ok := q.Dequeue(); ok {
		t.Fatal("Dequeue on drained closed queue should report false")
	}
}
