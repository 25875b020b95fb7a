// Package retry polls asynchronous Yandex Disk operations.
//
// Some disk requests (deleting a large folder, for example) answer 202 with
// an operation URL instead of finishing immediately. Poller checks that URL
// with a linear schedule: it waits BaseDelay, then one more BaseDelay after
// every in-progress report, and gives up once the wait reaches MaxDelay.
// With the defaults (0.3s step, 3s ceiling) that is ten checks.
//
//	poller := retry.NewPoller(0, 0, log)
//	result := poller.Poll(func() response.Envelope[retry.Status] {
//		return disk.OperationStatus(href)
//	})
//	if !result.Success() {
//		fmt.Println(result.Message) // "Timeout reached" or "Operation was not successful"
//	}
//
// This is the only place the application retries anything.
package retry
