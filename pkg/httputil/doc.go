// Package httputil provides HTTP helpers shared by the graph API client.
//
// # Retry
//
// [Retry] re-runs an operation when it fails with an error wrapped by
// [Retryable]; any other error is returned at once:
//
//	err := httputil.Retry(ctx, 3, 200*time.Millisecond, func() error {
//	    resp, err := http.Get(url)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    defer resp.Body.Close()
//	    if resp.StatusCode >= 500 {
//	        return httputil.Retryable(fmt.Errorf("status %d", resp.StatusCode))
//	    }
//	    return decode(resp.Body)
//	})
//
// The delay doubles after every failed attempt. Cancelling ctx stops the
// loop between attempts.
package httputil
